package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mshrynzw/auriary/pkg/model"
)

const diaryColumns = `
	id, user_id, journal_date, note,
	sleep_start_at, sleep_end_at, bath_start_at, bath_end_at,
	sleep_quality, wake_level, daytime_level, pre_sleep_level,
	med_adherence_level, appetite_level, sleep_desire_level, exercise_level,
	mood, has_od, od_times, ai_summary, ai_topics, created_at, updated_at`

// CreateDiary inserts a diary row and returns its id. One row per user per
// journal date; a second insert for the same date yields ErrDuplicateDate.
func (r *Repository) CreateDiary(ctx context.Context, d *model.Diary) (int64, error) {
	note, err := r.encodeNote(d.Note)
	if err != nil {
		return 0, err
	}
	odTimes, err := encodeOdTimes(d.OdTimes)
	if err != nil {
		return 0, err
	}

	const q = `
INSERT INTO t_diaries (
	user_id, journal_date, note,
	sleep_start_at, sleep_end_at, bath_start_at, bath_end_at,
	sleep_quality, wake_level, daytime_level, pre_sleep_level,
	med_adherence_level, appetite_level, sleep_desire_level, exercise_level,
	has_od, od_times, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now(), now())
RETURNING id
`
	row := r.db.QueryRow(ctx, q,
		d.UserID, d.JournalDate, note,
		d.SleepStartAt, d.SleepEndAt, d.BathStartAt, d.BathEndAt,
		d.SleepQuality, d.WakeLevel, d.DaytimeLevel, d.PreSleepLevel,
		d.MedAdherenceLevel, d.AppetiteLevel, d.SleepDesireLevel, d.ExerciseLevel,
		d.HasOd, odTimes,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateDate
		}
		return 0, fmt.Errorf("insert diary: %w", err)
	}
	return id, nil
}

// GetDiaryByID fetches one of the user's diaries. Soft-deleted rows are
// invisible.
func (r *Repository) GetDiaryByID(ctx context.Context, diaryID int64, userID string) (model.Diary, error) {
	q := `SELECT` + diaryColumns + `
FROM t_diaries
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
`
	row := r.db.QueryRow(ctx, q, diaryID, userID)
	d, err := r.scanDiary(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Diary{}, ErrNotFound
		}
		return model.Diary{}, fmt.Errorf("scan diary: %w", err)
	}
	return d, nil
}

// ListDiariesByUser returns a page of the user's diaries, newest first.
func (r *Repository) ListDiariesByUser(ctx context.Context, userID string, limit, offset int) ([]model.Diary, int, error) {
	var total int
	const countQ = `SELECT COUNT(1) FROM t_diaries WHERE user_id = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRow(ctx, countQ, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count diaries: %w", err)
	}

	q := `SELECT` + diaryColumns + `
FROM t_diaries
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY journal_date DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query diaries: %w", err)
	}
	defer rows.Close()

	out := make([]model.Diary, 0, limit)
	for rows.Next() {
		d, err := r.scanDiary(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan diary row: %w", err)
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, total, nil
}

// ListDiariesForChart returns all of the user's diaries oldest first; the
// series aggregator applies the period window.
func (r *Repository) ListDiariesForChart(ctx context.Context, userID string) ([]model.Diary, error) {
	q := `SELECT` + diaryColumns + `
FROM t_diaries
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY journal_date ASC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query diaries for chart: %w", err)
	}
	defer rows.Close()

	out := make([]model.Diary, 0, 64)
	for rows.Next() {
		d, err := r.scanDiary(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan diary row: %w", err)
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateDiary applies a partial update to one of the user's diaries.
func (r *Repository) UpdateDiary(ctx context.Context, diaryID int64, userID string, updates map[string]interface{}) error {
	validCols := map[string]bool{
		"note": true, "sleep_start_at": true, "sleep_end_at": true,
		"bath_start_at": true, "bath_end_at": true,
		"sleep_quality": true, "wake_level": true, "daytime_level": true,
		"pre_sleep_level": true, "med_adherence_level": true, "appetite_level": true,
		"sleep_desire_level": true, "exercise_level": true,
		"has_od": true, "od_times": true,
	}

	query := "UPDATE t_diaries SET updated_at = now()"
	args := []interface{}{}
	for col, val := range updates {
		if !validCols[col] {
			continue
		}
		switch col {
		case "note":
			if s, ok := val.(string); ok {
				enc, err := r.encodeNote(&s)
				if err != nil {
					return err
				}
				val = enc
			}
		case "od_times":
			if items, ok := val.([]model.OdTimeItem); ok {
				enc, err := encodeOdTimes(items)
				if err != nil {
					return err
				}
				val = enc
			}
		}
		args = append(args, val)
		query += fmt.Sprintf(", %s = $%d", col, len(args))
	}
	if len(args) == 0 {
		return nil
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d AND deleted_at IS NULL", len(args)+1, len(args)+2)
	args = append(args, diaryID, userID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update diary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDiaryAnalysis persists the outcome of an AI analysis run.
func (r *Repository) SaveDiaryAnalysis(ctx context.Context, diaryID int64, userID string, mood int, summary string, topics []string) error {
	topicBytes, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}

	const q = `
UPDATE t_diaries
SET mood = $1, ai_summary = $2, ai_topics = $3::jsonb, updated_at = now()
WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL
`
	tag, err := r.db.Exec(ctx, q, mood, summary, topicBytes, diaryID, userID)
	if err != nil {
		return fmt.Errorf("save diary analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteDiary marks a diary deleted; the row stays but no query returns
// it anymore.
func (r *Repository) SoftDeleteDiary(ctx context.Context, diaryID int64, userID string) error {
	const q = `
UPDATE t_diaries
SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
`
	tag, err := r.db.Exec(ctx, q, diaryID, userID)
	if err != nil {
		return fmt.Errorf("soft delete diary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) scanDiary(scan func(dest ...any) error) (model.Diary, error) {
	var d model.Diary
	var odBytes, topicBytes []byte
	err := scan(
		&d.ID, &d.UserID, &d.JournalDate, &d.Note,
		&d.SleepStartAt, &d.SleepEndAt, &d.BathStartAt, &d.BathEndAt,
		&d.SleepQuality, &d.WakeLevel, &d.DaytimeLevel, &d.PreSleepLevel,
		&d.MedAdherenceLevel, &d.AppetiteLevel, &d.SleepDesireLevel, &d.ExerciseLevel,
		&d.Mood, &d.HasOd, &odBytes, &d.AISummary, &topicBytes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return model.Diary{}, err
	}
	if len(odBytes) > 0 {
		if err := json.Unmarshal(odBytes, &d.OdTimes); err != nil {
			return model.Diary{}, fmt.Errorf("unmarshal od_times: %w", err)
		}
	}
	if len(topicBytes) > 0 {
		if err := json.Unmarshal(topicBytes, &d.AITopics); err != nil {
			return model.Diary{}, fmt.Errorf("unmarshal ai_topics: %w", err)
		}
	}
	if d.Note != nil && r.crypto != nil {
		plain, err := r.crypto.Decrypt(*d.Note)
		if err != nil {
			return model.Diary{}, fmt.Errorf("decrypt note: %w", err)
		}
		d.Note = &plain
	}
	return d, nil
}

func (r *Repository) encodeNote(note *string) (*string, error) {
	if note == nil || r.crypto == nil {
		return note, nil
	}
	enc, err := r.crypto.Encrypt(*note)
	if err != nil {
		return nil, fmt.Errorf("encrypt note: %w", err)
	}
	return &enc, nil
}

// encodeOdTimes keeps the null/empty distinction: a nil slice stays a NULL
// column, an empty one is stored as an empty JSON array.
func encodeOdTimes(items []model.OdTimeItem) ([]byte, error) {
	if items == nil {
		return nil, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal od_times: %w", err)
	}
	return b, nil
}
