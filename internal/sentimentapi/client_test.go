package sentimentapi

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mshrynzw/auriary/internal/sentiment"
	"github.com/mshrynzw/auriary/pkg/model"
)

func TestClientAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "良い一日", req.Text)

		json.NewEncoder(w).Encode(model.SentimentResult{
			Sentiment:             model.SentimentPositive,
			Score:                 8,
			Confidence:            0.93,
			HighlightedWords:      []model.HighlightedWord{{Word: "良い", Sentiment: model.SentimentPositive, Score: 0.7, Position: 0}},
			OverallSentimentScore: 0.6,
			ModelUsed:             "test-model",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	got, err := c.Analyze(context.Background(), "良い一日")
	require.NoError(t, err)
	assert.Equal(t, model.SentimentPositive, got.Sentiment)
	assert.Equal(t, 8, got.Score)
	require.Len(t, got.HighlightedWords, 1)
	assert.Equal(t, "良い", got.HighlightedWords[0].Word)
}

func TestClientAnalyzeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, c.Health(context.Background()))
}

func TestEngineFallsBackToMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	mock := sentiment.NewMockEngine(rand.New(rand.NewSource(1)))
	e := NewEngine(NewClient(srv.URL, time.Second), mock, zap.NewNop())

	res := e.Analyze(context.Background(), "今日は良い一日でした")
	assert.Equal(t, "mock", res.ModelUsed)
	assert.Equal(t, model.SentimentPositive, res.Sentiment)
	assert.Empty(t, res.HighlightedWords)
}

func TestEngineWithoutBackendUsesMock(t *testing.T) {
	mock := sentiment.NewMockEngine(rand.New(rand.NewSource(1)))
	e := NewEngine(nil, mock, zap.NewNop())

	res := e.Analyze(context.Background(), "疲れた")
	assert.Equal(t, "mock", res.ModelUsed)
	assert.Equal(t, model.SentimentNegative, res.Sentiment)
	assert.InDelta(t, float64(res.Score-5)/5.0, res.OverallSentimentScore, 1e-9)
}
