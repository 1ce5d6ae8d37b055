package model

import "time"

// Medication is a master row describing a medication the user takes.
// OdTimeItem.MedicationID references it.
type Medication struct {
	MedicationID  int64     `json:"medication_id" db:"medication_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	DefaultAmount *float64  `json:"default_amount" db:"default_amount"`
	AmountUnit    *string   `json:"amount_unit" db:"amount_unit"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateMedicationReq struct {
	Name          string   `json:"name" binding:"required,max=200"`
	DefaultAmount *float64 `json:"default_amount" binding:"omitempty,gt=0"`
	AmountUnit    *string  `json:"amount_unit" binding:"omitempty,max=20"`
}
