package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshrynzw/auriary/pkg/model"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock, nil)
}

func diaryRowColumns() []string {
	return []string{
		"id", "user_id", "journal_date", "note",
		"sleep_start_at", "sleep_end_at", "bath_start_at", "bath_end_at",
		"sleep_quality", "wake_level", "daytime_level", "pre_sleep_level",
		"med_adherence_level", "appetite_level", "sleep_desire_level", "exercise_level",
		"mood", "has_od", "od_times", "ai_summary", "ai_topics", "created_at", "updated_at",
	}
}

func TestCreateDiary(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO t_diaries`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	note := "今日は良い一日でした"
	id, err := repo.CreateDiary(context.Background(), &model.Diary{
		UserID:      "user-1",
		JournalDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Note:        &note,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDiaryDuplicateDate(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO t_diaries`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateDiary(context.Background(), &model.Diary{
		UserID:      "user-1",
		JournalDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDuplicateDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDiaryByID(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	mood := 7
	mock.ExpectQuery(`SELECT .+ FROM t_diaries`).
		WithArgs(int64(1), "user-1").
		WillReturnRows(pgxmock.NewRows(diaryRowColumns()).AddRow(
			int64(1), "user-1", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), nil,
			nil, nil, nil, nil,
			nil, nil, nil, nil,
			nil, nil, nil, nil,
			&mood, nil, []byte(`[{"occurred_at":"2025-01-10T09:00:00Z"}]`), nil, []byte(`["仕事","家族"]`), now, now,
		))

	d, err := repo.GetDiaryByID(context.Background(), 1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	require.NotNil(t, d.Mood)
	assert.Equal(t, 7, *d.Mood)
	require.Len(t, d.OdTimes, 1)
	assert.Equal(t, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), d.OdTimes[0].OccurredAt)
	assert.Equal(t, []string{"仕事", "家族"}, d.AITopics)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDiaryByIDNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM t_diaries`).
		WithArgs(int64(99), "user-1").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetDiaryByID(context.Background(), 99, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteDiaryNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE t_diaries`).
		WithArgs(int64(5), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDeleteDiary(context.Background(), 5, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDiaryNoValidFields(t *testing.T) {
	_, repo := newMockRepo(t)

	// nothing to update is a no-op, not an error
	err := repo.UpdateDiary(context.Background(), 1, "user-1", map[string]interface{}{"bogus_column": 1})
	assert.NoError(t, err)
}

func TestUpdateDiary(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE t_diaries`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateDiary(context.Background(), 1, "user-1", map[string]interface{}{
		"mood_is_not_updatable_here": nil,
		"wake_level":                 3,
	})
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
