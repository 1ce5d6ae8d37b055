package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mshrynzw/auriary/pkg/model"
)

func (r *Repository) CreateMedication(ctx context.Context, m *model.Medication) (int64, error) {
	const q = `
INSERT INTO m_medications (user_id, name, default_amount, amount_unit, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING medication_id
`
	row := r.db.QueryRow(ctx, q, m.UserID, m.Name, m.DefaultAmount, m.AmountUnit)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert medication: %w", err)
	}
	return id, nil
}

func (r *Repository) GetMedicationByID(ctx context.Context, medicationID int64, userID string) (model.Medication, error) {
	const q = `
SELECT medication_id, user_id, name, default_amount, amount_unit, created_at, updated_at
FROM m_medications
WHERE medication_id = $1 AND user_id = $2
`
	var m model.Medication
	row := r.db.QueryRow(ctx, q, medicationID, userID)
	if err := row.Scan(&m.MedicationID, &m.UserID, &m.Name, &m.DefaultAmount, &m.AmountUnit, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Medication{}, ErrNotFound
		}
		return model.Medication{}, fmt.Errorf("scan medication: %w", err)
	}
	return m, nil
}

func (r *Repository) ListMedicationsByUser(ctx context.Context, userID string) ([]model.Medication, error) {
	const q = `
SELECT medication_id, user_id, name, default_amount, amount_unit, created_at, updated_at
FROM m_medications
WHERE user_id = $1
ORDER BY name ASC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query medications: %w", err)
	}
	defer rows.Close()

	out := make([]model.Medication, 0, 8)
	for rows.Next() {
		var m model.Medication
		if err := rows.Scan(&m.MedicationID, &m.UserID, &m.Name, &m.DefaultAmount, &m.AmountUnit, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medication row: %w", err)
		}
		out = append(out, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
