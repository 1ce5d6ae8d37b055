package model

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// HighlightedWord is one flagged word reported by an analysis engine.
// Position is the character offset the engine saw; the highlighter re-locates
// occurrences in the current text rather than trusting it.
type HighlightedWord struct {
	Word      string    `json:"word"`
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	Position  int       `json:"position"`
}

// TextSegment is one piece of diary text, highlighted or plain. Concatenating
// the Text of all segments in order reproduces the source text exactly.
type TextSegment struct {
	Text      string           `json:"text"`
	Highlight *HighlightedWord `json:"highlight,omitempty"`
}

// AIAnalysisResult is the coarse analysis produced by the fallback engine.
type AIAnalysisResult struct {
	Sentiment  Sentiment `json:"sentiment"`
	Score      int       `json:"score"` // 1-10
	Confidence float64   `json:"confidence"`
	Topics     []string  `json:"topics"`
	Summary    string    `json:"summary"`
}

// SentimentResult is the full response of the sentiment analysis backend.
type SentimentResult struct {
	Sentiment             Sentiment         `json:"sentiment"`
	Score                 int               `json:"score"` // 1-10
	Confidence            float64           `json:"confidence"`
	HighlightedWords      []HighlightedWord `json:"highlighted_words"`
	OverallSentimentScore float64           `json:"overall_sentiment_score"` // -1.0 to 1.0
	ModelUsed             string            `json:"model_used,omitempty"`
}

type AnalyzeTextReq struct {
	Text string `json:"text" binding:"required,max=10000"`
}

type HighlightReq struct {
	Text  string            `json:"text" binding:"required,max=10000"`
	Words []HighlightedWord `json:"words"`
}
