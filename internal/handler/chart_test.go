package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshrynzw/auriary/internal/auth"
	"github.com/mshrynzw/auriary/internal/repository"
	"github.com/mshrynzw/auriary/pkg/model"
)

func newDBHandler(t *testing.T) (pgxmock.PgxPoolIface, *Handler) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	h := newTestHandler()
	h.Repository = repository.NewRepository(mock, nil)
	return mock, h
}

// authedRouter wires a route behind a stand-in auth middleware that injects
// fixed claims.
func authedRouter(method, path string, route gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("claims", &auth.UserClaims{UserID: "user-1"})
		c.Next()
	})
	r.Handle(method, path, route)
	return r
}

func diaryChartColumns() []string {
	return []string{
		"id", "user_id", "journal_date", "note",
		"sleep_start_at", "sleep_end_at", "bath_start_at", "bath_end_at",
		"sleep_quality", "wake_level", "daytime_level", "pre_sleep_level",
		"med_adherence_level", "appetite_level", "sleep_desire_level", "exercise_level",
		"mood", "has_od", "od_times", "ai_summary", "ai_topics", "created_at", "updated_at",
	}
}

func TestGetDashboardSeries(t *testing.T) {
	mock, h := newDBHandler(t)

	now := time.Now().UTC()
	mood := 7
	sleepStart := now.Add(-9 * time.Hour)
	sleepEnd := now.Add(-90 * time.Minute) // 7.5h
	mock.ExpectQuery(`SELECT .+ FROM t_diaries`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(diaryChartColumns()).
			AddRow(
				int64(1), "user-1", now.AddDate(0, 0, -1), nil,
				&sleepStart, &sleepEnd, nil, nil,
				nil, nil, nil, nil,
				nil, nil, nil, nil,
				&mood, nil, []byte(nil), nil, []byte(nil), now, now,
			).
			AddRow( // all-null row, dropped from the series
				int64(2), "user-1", now, nil,
				nil, nil, nil, nil,
				nil, nil, nil, nil,
				nil, nil, nil, nil,
				nil, nil, []byte(nil), nil, []byte(nil), now, now,
			))

	r := authedRouter(http.MethodGet, "/series", h.GetDashboardSeries)
	req := httptest.NewRequest(http.MethodGet, "/series?period=1month", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Period model.Period       `json:"period"`
			Points []model.ChartPoint `json:"points"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.PeriodOneMonth, res.Data.Period)
	require.Len(t, res.Data.Points, 1)
	require.NotNil(t, res.Data.Points[0].Mood)
	assert.Equal(t, 7, *res.Data.Points[0].Mood)
	require.NotNil(t, res.Data.Points[0].SleepHours)
	assert.Equal(t, 7.5, *res.Data.Points[0].SleepHours)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDashboardSeriesBadPeriod(t *testing.T) {
	_, h := newDBHandler(t)

	r := authedRouter(http.MethodGet, "/series", h.GetDashboardSeries)
	req := httptest.NewRequest(http.MethodGet, "/series?period=2weeks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDashboardSeriesDefaultsToAll(t *testing.T) {
	mock, h := newDBHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM t_diaries`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(diaryChartColumns()))

	r := authedRouter(http.MethodGet, "/series", h.GetDashboardSeries)
	req := httptest.NewRequest(http.MethodGet, "/series", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Period model.Period `json:"period"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.PeriodAll, res.Data.Period)
	require.NoError(t, mock.ExpectationsWereMet())
}
