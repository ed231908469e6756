package analytics

import (
	"time"

	"github.com/ndokic/tempo/internal/model"
)

// row is the neutral view of one record consumed by the shared grouping
// routine. Adapters flatten tasks and habits into rows so the grouping
// code exists exactly once.
type row struct {
	priority model.Priority
	goalID   *int
	done     bool
}

// Policy carries the per-entity-type grouping semantics.
type Policy struct {
	// Incomplete derives the "incomplete" figure for a group. Tasks use
	// total-completed; habits report total (a habit is never "incomplete",
	// the field doubles as an active count for the frontend).
	Incomplete func(total, completed int) int
}

var taskPolicy = Policy{
	Incomplete: func(total, completed int) int { return total - completed },
}

var habitPolicy = Policy{
	Incomplete: func(total, _ int) int { return total },
}

// ComputeTaskAnalytics builds the full report for a task snapshot. A task
// counts as completed when its completed flag is set.
func ComputeTaskAnalytics(tasks []model.Task, goals []model.Goal, now time.Time) *Report {
	rows := make([]row, len(tasks))
	for i, t := range tasks {
		rows[i] = row{priority: t.Priority, goalID: t.GoalID, done: t.Completed}
	}
	rep := aggregate(rows, goals, taskPolicy)
	rep.TimeStats = taskTimeStats(tasks, now)
	return rep
}

// ComputeHabitAnalytics builds the full report for a habit snapshot. A
// habit counts as completed when it has a check-in on now's calendar date.
func ComputeHabitAnalytics(habits []model.Habit, goals []model.Goal, now time.Time) *Report {
	today := model.DateOf(now)
	rows := make([]row, len(habits))
	for i, h := range habits {
		rows[i] = row{priority: h.Priority, goalID: h.GoalID, done: h.CheckedInOn(today)}
	}
	rep := aggregate(rows, goals, habitPolicy)
	rep.TimeStats = habitTimeStats(habits, now)
	return rep
}

// aggregate computes the overall, by-priority, by-goal, and productivity
// slices shared by both entity types.
func aggregate(rows []row, goals []model.Goal, pol Policy) *Report {
	rep := &Report{
		Overall:    groupStats(rows, pol, func(row) bool { return true }),
		ByPriority: make(map[string]GroupStats, 3),
	}

	// Every enumerated priority label appears in the output, even empty.
	// Unknown priority values contribute to overall totals only.
	for _, p := range model.Priorities() {
		p := p
		rep.ByPriority[string(p)] = groupStats(rows, pol, func(r row) bool {
			return r.priority == p
		})
	}

	rep.ByGoal = goalBreakdown(rows, goals, pol)
	rep.Productivity = productivity(rep.ByGoal, goals, len(rows))
	return rep
}

// groupStats counts the rows selected by keep and derives the completion
// figures under the given policy.
func groupStats(rows []row, pol Policy, keep func(row) bool) GroupStats {
	total, completed := 0, 0
	for _, r := range rows {
		if !keep(r) {
			continue
		}
		total++
		if r.done {
			completed++
		}
	}
	return GroupStats{
		Total:                total,
		Completed:            completed,
		Incomplete:           pol.Incomplete(total, completed),
		CompletionPercentage: percentage(completed, total),
	}
}

func goalBreakdown(rows []row, goals []model.Goal, pol Policy) GoalBreakdown {
	breakdown := GoalBreakdown{
		Goals:      make(map[int]GoalStats, len(goals)),
		TotalGoals: len(goals),
	}

	for _, g := range goals {
		id := g.ID
		stats := groupStats(rows, pol, func(r row) bool {
			return r.goalID != nil && *r.goalID == id
		})
		breakdown.Goals[id] = GoalStats{
			GoalName:             g.Title,
			Total:                stats.Total,
			Completed:            stats.Completed,
			Incomplete:           stats.Incomplete,
			CompletionPercentage: stats.CompletionPercentage,
		}
		breakdown.WithGoals += stats.Total
	}

	// Absence of goal_id alone decides this; a dangling reference to a
	// deleted goal is not "without goal".
	for _, r := range rows {
		if r.goalID == nil {
			breakdown.WithoutGoals++
		}
	}
	return breakdown
}

// productivity derives the highlight metrics from the by-goal slice.
// Goals are visited in stored order so ties keep the first encountered
// group; there is no secondary tie-break key.
func productivity(byGoal GoalBreakdown, goals []model.Goal, grandTotal int) Productivity {
	prod := Productivity{
		GoalDistribution: make(map[string]float64, len(goals)),
	}

	bestRate := 0.0
	for _, g := range goals {
		stats := byGoal.Goals[g.ID]
		if stats.Total >= 3 && stats.CompletionPercentage > bestRate {
			bestRate = stats.CompletionPercentage
			name := stats.GoalName
			prod.MostProductiveGoal = &name
		}
	}
	if prod.MostProductiveGoal != nil {
		prod.MostProductiveRate = round2(bestRate)
	}

	maxTasks := 0
	for _, g := range goals {
		stats := byGoal.Goals[g.ID]
		if stats.Total > maxTasks {
			maxTasks = stats.Total
			name := stats.GoalName
			prod.GoalWithMostTasks = &name
		}
	}
	prod.MaxTasksInGoal = maxTasks

	for _, g := range goals {
		stats := byGoal.Goals[g.ID]
		if grandTotal > 0 {
			prod.GoalDistribution[stats.GoalName] = round2(float64(stats.Total) / float64(grandTotal) * 100)
		} else {
			prod.GoalDistribution[stats.GoalName] = 0
		}
	}
	return prod
}
