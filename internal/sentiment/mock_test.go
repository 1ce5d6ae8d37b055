package sentiment

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mshrynzw/auriary/pkg/model"
)

func newTestEngine() *MockEngine {
	return NewMockEngine(rand.New(rand.NewSource(1)))
}

func TestMockEngineAnalyzeClassification(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		sentiment model.Sentiment
		minScore  int
		maxScore  int
	}{
		{"positive only", "今日は良い一日でした。楽しい時間を過ごせました。", model.SentimentPositive, 7, 9},
		{"negative only", "今日は悪い一日でした。悲しい出来事がありました。", model.SentimentNegative, 2, 4},
		{"neither", "今日は普通の一日でした。", model.SentimentNeutral, 4, 6},
		{"both", "楽しいこともあったが疲れた。", model.SentimentNeutral, 4, 6},
	}

	e := newTestEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// randomness is jitter inside the class band, so assert ranges
			for i := 0; i < 20; i++ {
				res := e.Analyze(tc.text)
				assert.Equal(t, tc.sentiment, res.Sentiment)
				assert.GreaterOrEqual(t, res.Score, tc.minScore)
				assert.LessOrEqual(t, res.Score, tc.maxScore)
				assert.GreaterOrEqual(t, res.Confidence, 0.7)
				assert.Less(t, res.Confidence, 0.9)
			}
		})
	}
}

func TestMockEngineTopics(t *testing.T) {
	e := newTestEngine()

	res := e.Analyze("今日は仕事で忙しかった。家族と食事をした。")
	assert.Contains(t, res.Topics, "仕事")
	assert.Contains(t, res.Topics, "家族")
	assert.Contains(t, res.Topics, "食事")

	topics := e.ExtractTopics("特に何もない一日でした。")
	assert.Equal(t, []string{"日常"}, topics)

	topics = e.ExtractTopics("出張で移動が多かった。")
	assert.Equal(t, []string{"旅行"}, topics)
}

func TestMockEngineSummary(t *testing.T) {
	e := newTestEngine()

	short := "短い日記"
	assert.Equal(t, short, e.Analyze(short).Summary)

	long := strings.Repeat("あ", 150)
	got := e.Analyze(long).Summary
	assert.Equal(t, strings.Repeat("あ", 100)+"...", got)

	// exactly at the limit stays untouched
	exact := strings.Repeat("い", 100)
	assert.Equal(t, exact, e.Analyze(exact).Summary)
}

func TestMockEngineCompleteText(t *testing.T) {
	e := newTestEngine()

	cases := []struct {
		text   string
		suffix string
	}{
		{"今日は晴れ", "とても充実した一日でした。"},
		{"明日は遠足", "楽しみにしています。"},
		{"仕事が山積み", "頑張りました。"},
		{"散歩した", "良い一日でした。"},
	}
	for _, tc := range cases {
		got := e.CompleteText(tc.text)
		assert.True(t, strings.HasSuffix(got, tc.suffix), "got %q", got)
		assert.Greater(t, len(got), len(tc.text))
	}

	// completion works off the last sentence only
	got := e.CompleteText("昨日は雨だった。今日は晴れ")
	assert.Equal(t, "今日は晴れとても充実した一日でした。", got)
}
