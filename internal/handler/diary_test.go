package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshrynzw/auriary/pkg/model"
)

func postAuthedJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateDiaryHandler(t *testing.T) {
	mock, h := newDBHandler(t)

	mock.ExpectQuery(`INSERT INTO t_diaries`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	r := authedRouter(http.MethodPost, "/diaries", h.CreateDiary)
	w := postAuthedJSON(t, r, "/diaries", model.CreateDiaryReq{JournalDate: "2025-01-10"})

	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int64(7), res.Data.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDiaryHandlerDuplicateDate(t *testing.T) {
	mock, h := newDBHandler(t)

	mock.ExpectQuery(`INSERT INTO t_diaries`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	r := authedRouter(http.MethodPost, "/diaries", h.CreateDiary)
	w := postAuthedJSON(t, r, "/diaries", model.CreateDiaryReq{JournalDate: "2025-01-10"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_ERROR")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDiaryHandlerBadDate(t *testing.T) {
	_, h := newDBHandler(t)

	r := authedRouter(http.MethodPost, "/diaries", h.CreateDiary)
	w := postAuthedJSON(t, r, "/diaries", map[string]string{"journal_date": "10-01-2025"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeOd(t *testing.T) {
	items := []model.OdTimeItem{{OccurredAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)}}

	// logging events forces has_od true even when the flag says otherwise
	f := false
	hasOd, odTimes := normalizeOd(&f, items)
	require.NotNil(t, hasOd)
	assert.True(t, *hasOd)
	assert.Equal(t, items, odTimes)

	// an empty list is stored as NULL and leaves the flag alone
	hasOd, odTimes = normalizeOd(&f, []model.OdTimeItem{})
	require.NotNil(t, hasOd)
	assert.False(t, *hasOd)
	assert.Nil(t, odTimes)

	hasOd, odTimes = normalizeOd(nil, nil)
	assert.Nil(t, hasOd)
	assert.Nil(t, odTimes)
}
