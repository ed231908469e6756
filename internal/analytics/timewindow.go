package analytics

import (
	"time"

	"github.com/ndokic/tempo/internal/model"
)

// Period selects the trend series granularity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Trend point counts per period.
const (
	dailyTrendPoints   = 30
	weeklyTrendPoints  = 12
	monthlyTrendPoints = 12
)

// miscGroup buckets time from habits without a goal (or with a dangling
// goal reference) in the by-goal totals.
const miscGroup = "Misc"

// TimeGroup is the recorded time for one group, in minutes and in hours
// rounded to 2 decimals for presentation.
type TimeGroup struct {
	TotalMinutes float64 `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
}

// TrendPoint is one bucket of the fixed-length trend series. Buckets with
// no recorded time are present with zero hours, never omitted.
type TrendPoint struct {
	Bucket string  `json:"bucket"`
	Hours  float64 `json:"hours"`
}

// TimeReport is the time-tracking analytics tree.
type TimeReport struct {
	TotalTimeMinutes float64              `json:"total_time_minutes"`
	DailyBreakdown   map[string]float64   `json:"daily_breakdown"`
	WeeklyBreakdown  map[string]float64   `json:"weekly_breakdown"`
	MonthlyBreakdown map[string]float64   `json:"monthly_breakdown"`
	ByHabit          map[string]TimeGroup `json:"by_habit"`
	ByGoal           map[string]TimeGroup `json:"by_goal"`
	Trend            []TrendPoint         `json:"trend"`
}

// ComputeTimeAnalytics buckets recorded check-in minutes of time-tracking
// habits into daily/weekly/monthly totals and a backward-looking trend
// series ending at now. A check-in with an unparseable date is skipped
// for that entry only.
func ComputeTimeAnalytics(habits []model.Habit, goals []model.Goal, period Period, now time.Time) *TimeReport {
	rep := &TimeReport{
		DailyBreakdown:   map[string]float64{},
		WeeklyBreakdown:  map[string]float64{},
		MonthlyBreakdown: map[string]float64{},
		ByHabit:          map[string]TimeGroup{},
		ByGoal:           map[string]TimeGroup{},
	}

	goalNames := make(map[int]string, len(goals))
	for _, g := range goals {
		goalNames[g.ID] = g.Title
	}

	for _, h := range habits {
		if !h.TrackTime {
			continue
		}
		for _, ci := range h.CheckIns {
			if ci.TimeSpent == nil {
				continue
			}
			day, ok := model.ParseTimestamp(ci.Date)
			if !ok {
				continue
			}
			minutes := *ci.TimeSpent

			rep.TotalTimeMinutes += minutes
			rep.DailyBreakdown[model.DateOf(day)] += minutes
			rep.WeeklyBreakdown[model.DateOf(mondayOf(day))] += minutes
			rep.MonthlyBreakdown[day.Format("2006-01")] += minutes

			addMinutes(rep.ByHabit, h.Title, minutes)
			group := miscGroup
			if h.GoalID != nil {
				if name, ok := goalNames[*h.GoalID]; ok {
					group = name
				}
			}
			addMinutes(rep.ByGoal, group, minutes)
		}
	}

	rep.Trend = trendSeries(rep, period, now)
	return rep
}

func addMinutes(groups map[string]TimeGroup, key string, minutes float64) {
	g := groups[key]
	g.TotalMinutes += minutes
	g.TotalHours = round2(g.TotalMinutes / 60)
	groups[key] = g
}

// mondayOf returns the Monday on or before t (ISO week start), truncated
// to midnight.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// trendSeries produces the fixed-count backward window ending today:
// 30 daily points, 12 weekly points, or 12 monthly points. Monthly
// stepping walks back in 30-day multiples, not calendar months, so the
// window drifts over a year; consumers rely on the existing keys.
func trendSeries(rep *TimeReport, period Period, now time.Time) []TrendPoint {
	switch period {
	case PeriodWeekly:
		points := make([]TrendPoint, 0, weeklyTrendPoints)
		monday := mondayOf(now)
		for i := weeklyTrendPoints - 1; i >= 0; i-- {
			key := model.DateOf(monday.AddDate(0, 0, -7*i))
			points = append(points, TrendPoint{Bucket: key, Hours: round2(rep.WeeklyBreakdown[key] / 60)})
		}
		return points
	case PeriodMonthly:
		points := make([]TrendPoint, 0, monthlyTrendPoints)
		for i := monthlyTrendPoints - 1; i >= 0; i-- {
			key := now.AddDate(0, 0, -30*i).Format("2006-01")
			points = append(points, TrendPoint{Bucket: key, Hours: round2(rep.MonthlyBreakdown[key] / 60)})
		}
		return points
	default: // PeriodDaily
		points := make([]TrendPoint, 0, dailyTrendPoints)
		for i := dailyTrendPoints - 1; i >= 0; i-- {
			key := model.DateOf(now.AddDate(0, 0, -i))
			points = append(points, TrendPoint{Bucket: key, Hours: round2(rep.DailyBreakdown[key] / 60)})
		}
		return points
	}
}
