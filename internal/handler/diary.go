package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshrynzw/auriary/internal/repository"
	"github.com/mshrynzw/auriary/pkg/model"
	"github.com/mshrynzw/auriary/pkg/response"
)

// CreateDiary creates the user's diary entry for one calendar date
// POST /api/v1/diaries
func (h *Handler) CreateDiary(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.CreateDiaryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("create diary bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	journalDate, err := time.Parse("2006-01-02", req.JournalDate)
	if err != nil {
		response.BadRequest(c, "journal_date must be YYYY-MM-DD")
		return
	}

	hasOd, odTimes := normalizeOd(req.HasOd, req.OdTimes)
	if err := h.resolveMedicationNames(c.Request.Context(), claims.UserID, odTimes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.BadRequest(c, err.Error())
			return
		}
		h.Logger.Sugar().Errorw("medication lookup failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not resolve medications")
		return
	}

	diary := &model.Diary{
		UserID:            claims.UserID,
		JournalDate:       journalDate,
		Note:              req.Note,
		SleepStartAt:      req.SleepStartAt,
		SleepEndAt:        req.SleepEndAt,
		BathStartAt:       req.BathStartAt,
		BathEndAt:         req.BathEndAt,
		SleepQuality:      req.SleepQuality,
		WakeLevel:         req.WakeLevel,
		DaytimeLevel:      req.DaytimeLevel,
		PreSleepLevel:     req.PreSleepLevel,
		MedAdherenceLevel: req.MedAdherenceLevel,
		AppetiteLevel:     req.AppetiteLevel,
		SleepDesireLevel:  req.SleepDesireLevel,
		ExerciseLevel:     req.ExerciseLevel,
		HasOd:             hasOd,
		OdTimes:           odTimes,
	}

	id, err := h.Repository.CreateDiary(c.Request.Context(), diary)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateDate) {
			response.Conflict(c, "diary already exists for this date")
			return
		}
		h.Logger.Sugar().Errorw("diary create failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not create diary")
		return
	}

	response.Created(c, gin.H{"id": id})
}

// GetDiary returns one of the user's diaries
// GET /api/v1/diaries/:id
func (h *Handler) GetDiary(c *gin.Context) {
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

	diary, err := h.Repository.GetDiaryByID(c.Request.Context(), diaryID, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "diary not found")
			return
		}
		h.Logger.Sugar().Errorw("diary fetch failed", "diary_id", diaryID, "err", err)
		response.InternalError(c, "could not fetch diary")
		return
	}

	response.OK(c, diary)
}

// ListDiaries returns a page of the user's diaries, newest first
// GET /api/v1/diaries
func (h *Handler) ListDiaries(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var query model.ListDiariesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	offset := (query.Page - 1) * query.PageSize
	diaries, total, err := h.Repository.ListDiariesByUser(c.Request.Context(), claims.UserID, query.PageSize, offset)
	if err != nil {
		h.Logger.Sugar().Errorw("diary list failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not list diaries")
		return
	}

	response.OKWithMeta(c, diaries, &response.Meta{
		Page:     query.Page,
		PageSize: query.PageSize,
		Total:    total,
	})
}

// UpdateDiary applies a partial update to one of the user's diaries
// PATCH /api/v1/diaries/:id
func (h *Handler) UpdateDiary(c *gin.Context) {
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

	var req model.UpdateDiaryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if req.SleepStartAt != nil {
		updates["sleep_start_at"] = *req.SleepStartAt
	}
	if req.SleepEndAt != nil {
		updates["sleep_end_at"] = *req.SleepEndAt
	}
	if req.BathStartAt != nil {
		updates["bath_start_at"] = *req.BathStartAt
	}
	if req.BathEndAt != nil {
		updates["bath_end_at"] = *req.BathEndAt
	}
	if req.SleepQuality != nil {
		updates["sleep_quality"] = *req.SleepQuality
	}
	if req.WakeLevel != nil {
		updates["wake_level"] = *req.WakeLevel
	}
	if req.DaytimeLevel != nil {
		updates["daytime_level"] = *req.DaytimeLevel
	}
	if req.PreSleepLevel != nil {
		updates["pre_sleep_level"] = *req.PreSleepLevel
	}
	if req.MedAdherenceLevel != nil {
		updates["med_adherence_level"] = *req.MedAdherenceLevel
	}
	if req.AppetiteLevel != nil {
		updates["appetite_level"] = *req.AppetiteLevel
	}
	if req.SleepDesireLevel != nil {
		updates["sleep_desire_level"] = *req.SleepDesireLevel
	}
	if req.ExerciseLevel != nil {
		updates["exercise_level"] = *req.ExerciseLevel
	}
	if req.OdTimes != nil {
		hasOd, odTimes := normalizeOd(req.HasOd, *req.OdTimes)
		if err := h.resolveMedicationNames(c.Request.Context(), claims.UserID, odTimes); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.BadRequest(c, err.Error())
				return
			}
			h.Logger.Sugar().Errorw("medication lookup failed", "user_id", claims.UserID, "err", err)
			response.InternalError(c, "could not resolve medications")
			return
		}
		updates["od_times"] = odTimes
		if hasOd != nil {
			updates["has_od"] = *hasOd
		}
	} else if req.HasOd != nil {
		updates["has_od"] = *req.HasOd
	}

	if len(updates) == 0 {
		response.BadRequest(c, "no fields to update")
		return
	}

	if err := h.Repository.UpdateDiary(c.Request.Context(), diaryID, claims.UserID, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "diary not found")
			return
		}
		h.Logger.Sugar().Errorw("diary update failed", "diary_id", diaryID, "err", err)
		response.InternalError(c, "could not update diary")
		return
	}

	diary, err := h.Repository.GetDiaryByID(c.Request.Context(), diaryID, claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("diary refetch failed", "diary_id", diaryID, "err", err)
		response.InternalError(c, "could not fetch diary")
		return
	}
	response.OK(c, diary)
}

// DeleteDiary soft-deletes one of the user's diaries
// DELETE /api/v1/diaries/:id
func (h *Handler) DeleteDiary(c *gin.Context) {
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

	if err := h.Repository.SoftDeleteDiary(c.Request.Context(), diaryID, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "diary not found")
			return
		}
		h.Logger.Sugar().Errorw("diary delete failed", "diary_id", diaryID, "err", err)
		response.InternalError(c, "could not delete diary")
		return
	}

	response.Message(c, "diary deleted")
}

// normalizeOd keeps has_od and od_times consistent: logging any overdose event
// forces has_od true, and an empty list is stored as NULL rather than [].
func normalizeOd(hasOd *bool, odTimes []model.OdTimeItem) (*bool, []model.OdTimeItem) {
	if len(odTimes) > 0 {
		t := true
		return &t, odTimes
	}
	return hasOd, nil
}

// resolveMedicationNames snapshots the medication name into od_times entries
// that reference a medication by id only, so renaming a medication later does
// not rewrite history.
func (h *Handler) resolveMedicationNames(ctx context.Context, userID string, items []model.OdTimeItem) error {
	for i := range items {
		if items[i].MedicationID == nil || items[i].MedicationName != nil {
			continue
		}
		med, err := h.Repository.GetMedicationByID(ctx, *items[i].MedicationID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("unknown medication_id %d: %w", *items[i].MedicationID, repository.ErrNotFound)
			}
			return err
		}
		items[i].MedicationName = &med.Name
	}
	return nil
}
