package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mshrynzw/auriary/internal/sentiment"
	"github.com/mshrynzw/auriary/internal/sentimentapi"
	"github.com/mshrynzw/auriary/pkg/model"
)

func newTestHandler() *Handler {
	mock := sentiment.NewMockEngine(rand.New(rand.NewSource(1)))
	return &Handler{
		Logger: zap.NewNop(),
		Engine: sentimentapi.NewEngine(nil, mock, zap.NewNop()),
	}
}

func postJSON(t *testing.T, route gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", route)

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHighlightText(t *testing.T) {
	h := newTestHandler()

	w := postJSON(t, h.HighlightText, model.HighlightReq{
		Text: "今日はとても良い一日でした",
		Words: []model.HighlightedWord{
			{Word: "良い", Sentiment: model.SentimentPositive, Score: 0.8},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success bool `json:"success"`
		Data    struct {
			Segments []model.TextSegment `json:"segments"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	require.Len(t, res.Data.Segments, 3)
	assert.Equal(t, "今日はとても", res.Data.Segments[0].Text)
	assert.Equal(t, "良い", res.Data.Segments[1].Text)
	require.NotNil(t, res.Data.Segments[1].Highlight)
	assert.Equal(t, "一日でした", res.Data.Segments[2].Text)
}

func TestHighlightTextRequiresText(t *testing.T) {
	h := newTestHandler()

	w := postJSON(t, h.HighlightText, model.HighlightReq{Words: nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeTextFallsBackToMock(t *testing.T) {
	h := newTestHandler()

	w := postJSON(t, h.AnalyzeText, model.AnalyzeTextReq{Text: "今日は楽しい一日でした"})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Analysis model.SentimentResult `json:"analysis"`
			Segments []model.TextSegment   `json:"segments"`
			Cached   bool                  `json:"cached"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.SentimentPositive, res.Data.Analysis.Sentiment)
	assert.Equal(t, "mock", res.Data.Analysis.ModelUsed)
	assert.False(t, res.Data.Cached)
	// no highlighted words from the mock, so the text comes back as one segment
	require.Len(t, res.Data.Segments, 1)
	assert.Nil(t, res.Data.Segments[0].Highlight)
}

func TestExtractTopics(t *testing.T) {
	h := newTestHandler()

	w := postJSON(t, h.ExtractTopics, model.AnalyzeTextReq{Text: "仕事のあと家族と食事をした"})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Topics []string `json:"topics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"仕事", "家族", "食事"}, res.Data.Topics)
}

func TestCompleteText(t *testing.T) {
	h := newTestHandler()

	w := postJSON(t, h.CompleteText, model.AnalyzeTextReq{Text: "今日は朝から"})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Completion string `json:"completion"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "今日は朝からとても充実した一日でした。", res.Data.Completion)
}
