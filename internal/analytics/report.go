package analytics

import "math"

// GroupStats are the counts and completion rate for one bucket of records.
type GroupStats struct {
	Total                int     `json:"total"`
	Completed            int     `json:"completed"`
	Incomplete           int     `json:"incomplete"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// GoalStats are GroupStats for one goal plus the goal's display name.
type GoalStats struct {
	GoalName             string  `json:"goal_name"`
	Total                int     `json:"total"`
	Completed            int     `json:"completed"`
	Incomplete           int     `json:"incomplete"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// GoalBreakdown groups records by the goal they link to. Records whose
// goal_id points at a deleted goal appear in neither a goal group nor the
// without-goals counter; only absence of goal_id makes a record
// "without goal".
type GoalBreakdown struct {
	Goals        map[int]GoalStats `json:"goals"`
	WithGoals    int               `json:"tasks_with_goals"`
	WithoutGoals int               `json:"tasks_without_goals"`
	TotalGoals   int               `json:"total_goals"`
}

// TimeStats are the date-derived counters. For habit reports the field
// names are kept but the meanings substitute check-in metrics: overdue =
// not checked in today, due soon = checked in within the last 7 days,
// completed today = checked in today, avg completion days = average
// check-ins per habit.
type TimeStats struct {
	OverdueCount      int     `json:"overdue_count"`
	DueSoonCount      int     `json:"due_soon_count"`
	CompletedToday    int     `json:"completed_today"`
	CreatedToday      int     `json:"created_today"`
	AvgCompletionDays float64 `json:"avg_completion_days"`
}

// Productivity is derived from the by-goal slice.
type Productivity struct {
	MostProductiveGoal *string            `json:"most_productive_goal"`
	MostProductiveRate float64            `json:"most_productive_completion_rate"`
	GoalWithMostTasks  *string            `json:"goal_with_most_tasks"`
	MaxTasksInGoal     int                `json:"max_tasks_in_goal"`
	GoalDistribution   map[string]float64 `json:"goal_distribution"`
}

// Report is the full analytics tree. The JSON shape is the wire contract
// with the presentation layer and is identical for tasks and habits.
type Report struct {
	Overall      GroupStats            `json:"overall"`
	ByPriority   map[string]GroupStats `json:"by_priority"`
	ByGoal       GoalBreakdown         `json:"by_goal"`
	TimeStats    TimeStats             `json:"time_stats"`
	Productivity Productivity          `json:"productivity"`
}

// round2 rounds to 2 decimal places (percentages).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place (day averages).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percentage returns completed/total*100 rounded to 2 decimals, and 0 for
// an empty group.
func percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(completed) / float64(total) * 100)
}
