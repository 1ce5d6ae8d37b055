package sentiment

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/mshrynzw/auriary/pkg/model"
)

// Keyword tables for the fallback analyzer. These are configuration data, not
// logic: the real analyzer backend uses a proper model, this rule engine only
// stands in when no backend is configured.
var (
	positiveKeywords = []string{"良い", "楽しい", "嬉しい", "幸せ", "感謝"}
	negativeKeywords = []string{"悪い", "悲しい", "辛い", "苦しい", "疲れた"}

	topicGroups = []struct {
		label    string
		keywords []string
	}{
		{"仕事", []string{"仕事", "職場", "会社"}},
		{"家族", []string{"家族", "親", "子"}},
		{"健康", []string{"健康", "体調", "病気"}},
		{"趣味", []string{"趣味", "読書", "映画", "音楽"}},
		{"食事", []string{"食事", "料理", "レストラン"}},
		{"旅行", []string{"旅行", "出張", "移動"}},
	}

	defaultTopic = "日常"
)

const summaryMaxRunes = 100

// MockEngine is a rule-based stand-in for the sentiment analysis backend.
// The random source is injected so tests can pin it; pass nil for a
// time-seeded one.
type MockEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockEngine(rng *rand.Rand) *MockEngine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockEngine{rng: rng}
}

// Analyze classifies text by keyword presence. Scores are jittered inside the
// band of the chosen class, so callers must treat them as ranges.
func (e *MockEngine) Analyze(text string) model.AIAnalysisResult {
	hasPositive := containsAny(text, positiveKeywords)
	hasNegative := containsAny(text, negativeKeywords)

	e.mu.Lock()
	var sentiment model.Sentiment
	var score int
	switch {
	case hasPositive && !hasNegative:
		sentiment = model.SentimentPositive
		score = 7 + e.rng.Intn(3) // 7-9
	case hasNegative && !hasPositive:
		sentiment = model.SentimentNegative
		score = 2 + e.rng.Intn(3) // 2-4
	default:
		sentiment = model.SentimentNeutral
		score = 4 + e.rng.Intn(3) // 4-6
	}
	confidence := 0.7 + e.rng.Float64()*0.2
	e.mu.Unlock()

	return model.AIAnalysisResult{
		Sentiment:  sentiment,
		Score:      score,
		Confidence: confidence,
		Topics:     e.ExtractTopics(text),
		Summary:    summarize(text),
	}
}

// ExtractTopics returns every topic group with at least one keyword hit,
// falling back to the default topic.
func (e *MockEngine) ExtractTopics(text string) []string {
	topics := make([]string, 0, len(topicGroups))
	for _, g := range topicGroups {
		if containsAny(text, g.keywords) {
			topics = append(topics, g.label)
		}
	}
	if len(topics) == 0 {
		topics = append(topics, defaultTopic)
	}
	return topics
}

// Summarize produces the stand-in summary: the first 100 runes of the text,
// with an ellipsis marker when truncated.
func (e *MockEngine) Summarize(text string) string {
	return summarize(text)
}

// CompleteText continues the last sentence with a canned phrase.
func (e *MockEngine) CompleteText(text string) string {
	last := lastSentence(text)
	switch {
	case strings.Contains(last, "今日"):
		return last + "とても充実した一日でした。"
	case strings.Contains(last, "明日"):
		return last + "楽しみにしています。"
	case strings.Contains(last, "仕事"):
		return last + "頑張りました。"
	default:
		return last + "良い一日でした。"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryMaxRunes {
		return text
	}
	return string(runes[:summaryMaxRunes]) + "..."
}

func lastSentence(text string) string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '。' || r == '！' || r == '？' || r == '\n'
	})
	for i := len(sentences) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(sentences[i]); s != "" {
			return s
		}
	}
	return ""
}
