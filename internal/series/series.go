package series

import (
	"math"
	"sort"
	"time"

	"github.com/mshrynzw/auriary/pkg/model"
)

// BuildSeries turns diary rows into a chart-ready timeseries: rows inside the
// period window, each with derived sleep hours and overdose-event count, rows
// with no plottable value dropped, sorted ascending by journal date.
//
// Sub-scores and mood pass through unchanged; this layer does not validate
// domain ranges.
func BuildSeries(diaries []model.Diary, period model.Period) []model.ChartPoint {
	return buildSeriesAt(time.Now(), diaries, period)
}

func buildSeriesAt(now time.Time, diaries []model.Diary, period model.Period) []model.ChartPoint {
	cutoff, bounded := periodCutoff(now, period)

	points := make([]model.ChartPoint, 0, len(diaries))
	for _, d := range diaries {
		if bounded && d.JournalDate.Before(cutoff) {
			continue
		}
		p := model.ChartPoint{
			Date:              d.JournalDate,
			Mood:              d.Mood,
			SleepHours:        sleepHours(d.SleepStartAt, d.SleepEndAt),
			SleepQuality:      d.SleepQuality,
			WakeLevel:         d.WakeLevel,
			DaytimeLevel:      d.DaytimeLevel,
			PreSleepLevel:     d.PreSleepLevel,
			MedAdherenceLevel: d.MedAdherenceLevel,
			AppetiteLevel:     d.AppetiteLevel,
			SleepDesireLevel:  d.SleepDesireLevel,
			ExerciseLevel:     d.ExerciseLevel,
			OdEventCount:      odEventCount(d.OdTimes),
		}
		if !plottable(p) {
			continue
		}
		points = append(points, p)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// periodCutoff returns the earliest journal date kept. Calendar arithmetic,
// not fixed-length windows: "1month" on March 31 reaches back to the last day
// of February the way AddDate normalizes it.
func periodCutoff(now time.Time, period model.Period) (time.Time, bool) {
	switch period {
	case model.PeriodOneMonth:
		return now.AddDate(0, -1, 0), true
	case model.PeriodThreeMonths:
		return now.AddDate(0, -3, 0), true
	case model.PeriodSixMonths:
		return now.AddDate(0, -6, 0), true
	case model.PeriodOneYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// sleepHours derives the slept duration in hours, rounded to one decimal.
// An end clock-time before the start means the session crossed midnight, so
// the end rolls over to the next day. Durations outside (0, 24h] indicate
// corrupt input and yield nil.
func sleepHours(start, end *time.Time) *float64 {
	if start == nil || end == nil {
		return nil
	}
	s, e := *start, *end
	if e.Before(s) {
		e = e.Add(24 * time.Hour)
	}
	hours := e.Sub(s).Hours()
	if hours < 0 || hours > 24 {
		return nil
	}
	rounded := math.Round(hours*10) / 10
	return &rounded
}

// odEventCount distinguishes "no OD data" (nil column) from "zero events"
// (present but empty array).
func odEventCount(items []model.OdTimeItem) *int {
	if items == nil {
		return nil
	}
	n := len(items)
	return &n
}

func plottable(p model.ChartPoint) bool {
	return p.Mood != nil ||
		p.SleepHours != nil ||
		p.SleepQuality != nil ||
		p.WakeLevel != nil ||
		p.DaytimeLevel != nil ||
		p.PreSleepLevel != nil ||
		p.MedAdherenceLevel != nil ||
		p.AppetiteLevel != nil ||
		p.SleepDesireLevel != nil ||
		p.ExerciseLevel != nil ||
		p.OdEventCount != nil
}
