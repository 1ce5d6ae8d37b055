package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mshrynzw/auriary/internal/repository"
	"github.com/mshrynzw/auriary/internal/sentiment"
	"github.com/mshrynzw/auriary/pkg/model"
	"github.com/mshrynzw/auriary/pkg/response"
)

// AnalyzeDiary runs sentiment analysis on a diary's note and persists the
// outcome (mood, summary, topics) back onto the row.
// POST /api/v1/diaries/:id/analyze
func (h *Handler) AnalyzeDiary(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	diaryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid diary id")
		return
	}

	ctx := c.Request.Context()
	diary, err := h.Repository.GetDiaryByID(ctx, diaryID, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "diary not found")
			return
		}
		h.Logger.Sugar().Errorw("diary fetch failed", "diary_id", diaryID, "err", err)
		response.InternalError(c, "could not fetch diary")
		return
	}
	if diary.Note == nil || *diary.Note == "" {
		response.BadRequest(c, "diary has no note to analyze")
		return
	}
	note := *diary.Note

	result, hit := h.AnalysisCache.Get(ctx, note)
	if !hit {
		r := h.Engine.Analyze(ctx, note)
		result = &r
		h.AnalysisCache.Set(ctx, note, r)
	}

	summary := h.Engine.Mock().Summarize(note)
	topics := h.Engine.Mock().ExtractTopics(note)
	if err := h.Repository.SaveDiaryAnalysis(ctx, diaryID, claims.UserID, result.Score, summary, topics); err != nil {
		h.Logger.Sugar().Errorw("save analysis failed", "diary_id", diaryID, "err", err)
		response.InternalError(c, "could not save analysis")
		return
	}

	response.OK(c, gin.H{
		"analysis": result,
		"summary":  summary,
		"topics":   topics,
		"segments": sentiment.Highlight(note, result.HighlightedWords),
		"cached":   hit,
	})
}

// AnalyzeText runs sentiment analysis on arbitrary text without persisting
// anything.
// POST /api/v1/ai/analyze
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req model.AnalyzeTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	result, hit := h.AnalysisCache.Get(ctx, req.Text)
	if !hit {
		r := h.Engine.Analyze(ctx, req.Text)
		result = &r
		h.AnalysisCache.Set(ctx, req.Text, r)
	}

	response.OK(c, gin.H{
		"analysis": result,
		"segments": sentiment.Highlight(req.Text, result.HighlightedWords),
		"cached":   hit,
	})
}

// HighlightText splits text into plain and highlighted segments for the
// provided word list.
// POST /api/v1/ai/highlight
func (h *Handler) HighlightText(c *gin.Context) {
	var req model.HighlightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.OK(c, gin.H{"segments": sentiment.Highlight(req.Text, req.Words)})
}

// CompleteText continues the text's last sentence.
// POST /api/v1/ai/complete
func (h *Handler) CompleteText(c *gin.Context) {
	var req model.AnalyzeTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.OK(c, gin.H{"completion": h.Engine.Mock().CompleteText(req.Text)})
}

// ExtractTopics lists the topics detected in the text.
// POST /api/v1/ai/topics
func (h *Handler) ExtractTopics(c *gin.Context) {
	var req model.AnalyzeTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.OK(c, gin.H{"topics": h.Engine.Mock().ExtractTopics(req.Text)})
}
