package sentimentapi

import (
	"context"

	"go.uber.org/zap"

	"github.com/mshrynzw/auriary/internal/sentiment"
	"github.com/mshrynzw/auriary/pkg/model"
)

// Engine routes analysis to the backend when one is configured and falls back
// to the rule-based mock otherwise. Analyze never fails: any backend error
// degrades to the mock result.
type Engine struct {
	client *Client // nil when no backend is configured
	mock   *sentiment.MockEngine
	logger *zap.Logger
}

func NewEngine(client *Client, mock *sentiment.MockEngine, logger *zap.Logger) *Engine {
	return &Engine{client: client, mock: mock, logger: logger}
}

func (e *Engine) Analyze(ctx context.Context, text string) model.SentimentResult {
	if e.client != nil {
		result, err := e.client.Analyze(ctx, text)
		if err == nil {
			return *result
		}
		e.logger.Sugar().Warnw("sentiment backend failed, falling back to mock", "err", err)
	}

	// the mock does not locate word positions, so highlighted_words stays empty
	mockRes := e.mock.Analyze(text)
	return model.SentimentResult{
		Sentiment:             mockRes.Sentiment,
		Score:                 mockRes.Score,
		Confidence:            mockRes.Confidence,
		HighlightedWords:      []model.HighlightedWord{},
		OverallSentimentScore: float64(mockRes.Score-5) / 5.0,
		ModelUsed:             "mock",
	}
}

// Mock exposes the fallback engine for the endpoints that are mock-only
// (completion, topic extraction) and for summaries.
func (e *Engine) Mock() *sentiment.MockEngine {
	return e.mock
}
