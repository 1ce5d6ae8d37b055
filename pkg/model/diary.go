package model

import "time"

// OdTimeItem is one logged overdose event, stored inside the diary row's
// od_times JSONB array.
type OdTimeItem struct {
	OccurredAt     time.Time `json:"occurred_at" binding:"required"`
	MedicationID   *int64    `json:"medication_id"`
	MedicationName *string   `json:"medication_name"`
	Amount         *float64  `json:"amount"`
	AmountUnit     *string   `json:"amount_unit"`
	ContextMemo    *string   `json:"context_memo"`
}

// Diary is one journal entry for a single calendar date. All sub-scores are
// optional; when present they are 1-5 (mood 1-10). The API never returns rows
// with DeletedAt set.
type Diary struct {
	ID                int64        `json:"id" db:"id"`
	UserID            string       `json:"user_id" db:"user_id"`
	JournalDate       time.Time    `json:"journal_date" db:"journal_date"`
	Note              *string      `json:"note" db:"note"`
	SleepStartAt      *time.Time   `json:"sleep_start_at" db:"sleep_start_at"`
	SleepEndAt        *time.Time   `json:"sleep_end_at" db:"sleep_end_at"`
	BathStartAt       *time.Time   `json:"bath_start_at" db:"bath_start_at"`
	BathEndAt         *time.Time   `json:"bath_end_at" db:"bath_end_at"`
	SleepQuality      *int         `json:"sleep_quality" db:"sleep_quality"`
	WakeLevel         *int         `json:"wake_level" db:"wake_level"`
	DaytimeLevel      *int         `json:"daytime_level" db:"daytime_level"`
	PreSleepLevel     *int         `json:"pre_sleep_level" db:"pre_sleep_level"`
	MedAdherenceLevel *int         `json:"med_adherence_level" db:"med_adherence_level"`
	AppetiteLevel     *int         `json:"appetite_level" db:"appetite_level"`
	SleepDesireLevel  *int         `json:"sleep_desire_level" db:"sleep_desire_level"`
	ExerciseLevel     *int         `json:"exercise_level" db:"exercise_level"`
	Mood              *int         `json:"mood" db:"mood"`
	HasOd             *bool        `json:"has_od" db:"has_od"`
	OdTimes           []OdTimeItem `json:"od_times" db:"od_times"` // nil means the column is NULL
	AISummary         *string      `json:"ai_summary" db:"ai_summary"`
	AITopics          []string     `json:"ai_topics" db:"ai_topics"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time   `json:"-" db:"deleted_at"`
}

type CreateDiaryReq struct {
	JournalDate       string       `json:"journal_date" binding:"required,datetime=2006-01-02"`
	Note              *string      `json:"note" binding:"omitempty,max=10000"`
	SleepStartAt      *time.Time   `json:"sleep_start_at"`
	SleepEndAt        *time.Time   `json:"sleep_end_at"`
	BathStartAt       *time.Time   `json:"bath_start_at"`
	BathEndAt         *time.Time   `json:"bath_end_at"`
	SleepQuality      *int         `json:"sleep_quality" binding:"omitempty,min=1,max=5"`
	WakeLevel         *int         `json:"wake_level" binding:"omitempty,min=1,max=5"`
	DaytimeLevel      *int         `json:"daytime_level" binding:"omitempty,min=1,max=5"`
	PreSleepLevel     *int         `json:"pre_sleep_level" binding:"omitempty,min=1,max=5"`
	MedAdherenceLevel *int         `json:"med_adherence_level" binding:"omitempty,min=1,max=5"`
	AppetiteLevel     *int         `json:"appetite_level" binding:"omitempty,min=1,max=5"`
	SleepDesireLevel  *int         `json:"sleep_desire_level" binding:"omitempty,min=1,max=5"`
	ExerciseLevel     *int         `json:"exercise_level" binding:"omitempty,min=1,max=5"`
	HasOd             *bool        `json:"has_od"`
	OdTimes           []OdTimeItem `json:"od_times" binding:"omitempty,dive"`
}

type UpdateDiaryReq struct {
	Note              *string      `json:"note" binding:"omitempty,max=10000"`
	SleepStartAt      *time.Time   `json:"sleep_start_at"`
	SleepEndAt        *time.Time   `json:"sleep_end_at"`
	BathStartAt       *time.Time   `json:"bath_start_at"`
	BathEndAt         *time.Time   `json:"bath_end_at"`
	SleepQuality      *int         `json:"sleep_quality" binding:"omitempty,min=1,max=5"`
	WakeLevel         *int         `json:"wake_level" binding:"omitempty,min=1,max=5"`
	DaytimeLevel      *int         `json:"daytime_level" binding:"omitempty,min=1,max=5"`
	PreSleepLevel     *int         `json:"pre_sleep_level" binding:"omitempty,min=1,max=5"`
	MedAdherenceLevel *int         `json:"med_adherence_level" binding:"omitempty,min=1,max=5"`
	AppetiteLevel     *int         `json:"appetite_level" binding:"omitempty,min=1,max=5"`
	SleepDesireLevel  *int         `json:"sleep_desire_level" binding:"omitempty,min=1,max=5"`
	ExerciseLevel     *int         `json:"exercise_level" binding:"omitempty,min=1,max=5"`
	HasOd             *bool        `json:"has_od"`
	OdTimes           *[]OdTimeItem `json:"od_times" binding:"omitempty,dive"`
}

type ListDiariesQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}
