package model

import "time"

// Period is a lookback window for chart queries.
type Period string

const (
	PeriodAll         Period = "all"
	PeriodOneMonth    Period = "1month"
	PeriodThreeMonths Period = "3months"
	PeriodSixMonths   Period = "6months"
	PeriodOneYear     Period = "1year"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodAll, PeriodOneMonth, PeriodThreeMonths, PeriodSixMonths, PeriodOneYear:
		return true
	}
	return false
}

// ChartPoint is one plottable day: the raw scores carried through plus the
// derived sleep duration and overdose-event count. A point exists only when
// at least one of its values is non-nil.
type ChartPoint struct {
	Date              time.Time `json:"date"`
	Mood              *int      `json:"mood"`
	SleepHours        *float64  `json:"sleep_hours"`
	SleepQuality      *int      `json:"sleep_quality"`
	WakeLevel         *int      `json:"wake_level"`
	DaytimeLevel      *int      `json:"daytime_level"`
	PreSleepLevel     *int      `json:"pre_sleep_level"`
	MedAdherenceLevel *int      `json:"med_adherence_level"`
	AppetiteLevel     *int      `json:"appetite_level"`
	SleepDesireLevel  *int      `json:"sleep_desire_level"`
	ExerciseLevel     *int      `json:"exercise_level"`
	OdEventCount      *int      `json:"od_event_count"`
}
