package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mshrynzw/auriary/internal/series"
	"github.com/mshrynzw/auriary/pkg/model"
	"github.com/mshrynzw/auriary/pkg/response"
)

// GetDashboardSeries returns the chart timeseries for the requested period
// GET /api/v1/dashboard/series?period=1month
func (h *Handler) GetDashboardSeries(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	period := model.Period(c.DefaultQuery("period", string(model.PeriodAll)))
	if !period.Valid() {
		response.BadRequest(c, "period must be one of: all, 1month, 3months, 6months, 1year")
		return
	}

	diaries, err := h.Repository.ListDiariesForChart(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("chart query failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "could not load chart data")
		return
	}

	response.OK(c, gin.H{
		"period": period,
		"points": series.BuildSeries(diaries, period),
	})
}
