package analytics

import (
	"math"
	"time"

	"github.com/ndokic/tempo/internal/model"
)

// dueSoonWindowDays is the inclusive look-ahead for "due soon".
const dueSoonWindowDays = 7

// floorDays converts a duration to whole days, flooring toward negative
// infinity so that a due date a few hours in the past lands on day -1, not
// day 0.
func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}

// taskTimeStats scans all tasks once for the date-derived counters.
// Unparseable dates silently skip the record for that metric only.
func taskTimeStats(tasks []model.Task, now time.Time) TimeStats {
	var stats TimeStats
	today := model.DateOf(now)
	var completionDays []int

	for _, t := range tasks {
		if t.DueDate != "" && !t.Completed {
			if due, ok := model.ParseTimestamp(t.DueDate); ok {
				if due.Before(now) {
					stats.OverdueCount++
				}
				if days := floorDays(due.Sub(now)); days >= 0 && days <= dueSoonWindowDays {
					stats.DueSoonCount++
				}
			}
		}

		if t.CompletedAt != nil {
			if completed, ok := model.ParseTimestamp(*t.CompletedAt); ok {
				if model.DateOf(completed) == today {
					stats.CompletedToday++
				}
				if created, ok := model.ParseTimestamp(t.CreatedAt); ok {
					if days := floorDays(completed.Sub(created)); days >= 0 {
						completionDays = append(completionDays, days)
					}
				}
			}
		}

		if created, ok := model.ParseTimestamp(t.CreatedAt); ok {
			if model.DateOf(created) == today {
				stats.CreatedToday++
			}
		}
	}

	if len(completionDays) > 0 {
		sum := 0
		for _, d := range completionDays {
			sum += d
		}
		stats.AvgCompletionDays = round1(float64(sum) / float64(len(completionDays)))
	}
	return stats
}

// habitTimeStats fills the same field names with check-in metrics, keeping
// the report shape identical for the frontend.
func habitTimeStats(habits []model.Habit, now time.Time) TimeStats {
	var stats TimeStats
	today := model.DateOf(now)
	weekAgo := model.DateOf(now.AddDate(0, 0, -dueSoonWindowDays))
	totalCheckIns := 0

	for _, h := range habits {
		if !h.CheckedInOn(today) {
			stats.OverdueCount++
		} else {
			stats.CompletedToday++
		}

		for _, ci := range h.CheckIns {
			parsed, ok := model.ParseTimestamp(ci.Date)
			if !ok {
				continue
			}
			// Compare calendar dates, not the raw strings: a datetime-form
			// check-in date would sort after its own day.
			if date := model.DateOf(parsed); date >= weekAgo && date <= today {
				stats.DueSoonCount++
				break
			}
		}

		if created, ok := model.ParseTimestamp(h.CreatedAt); ok {
			if model.DateOf(created) == today {
				stats.CreatedToday++
			}
		}

		totalCheckIns += len(h.CheckIns)
	}

	if len(habits) > 0 {
		stats.AvgCompletionDays = round1(float64(totalCheckIns) / float64(len(habits)))
	}
	return stats
}
