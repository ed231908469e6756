package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/ndokic/tempo/internal/model"
)

func intPtr(v int) *int { return &v }

func f64Ptr(v float64) *float64 { return &v }

func testNow() time.Time {
	return time.Date(2024, 6, 12, 15, 0, 0, 0, time.Local)
}

func TestTaskScenarioFiveTasks(t *testing.T) {
	now := testNow()
	overdueDate := model.DateOf(now.AddDate(0, 0, -2))
	completedAt := model.Timestamp(now.AddDate(0, 0, -1))

	tasks := []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityNow, Completed: true, CreatedAt: "2024-06-01T09:00:00", CompletedAt: &completedAt},
		{ID: 2, Title: "b", Priority: model.PriorityNow, Completed: true, CreatedAt: "2024-06-01T09:00:00", CompletedAt: &completedAt},
		{ID: 3, Title: "c", Priority: model.PriorityNext, Completed: true, CreatedAt: "2024-06-02T09:00:00", CompletedAt: &completedAt},
		{ID: 4, Title: "d", Priority: model.PriorityLater, Completed: false, CreatedAt: "2024-06-03T09:00:00", DueDate: overdueDate},
		{ID: 5, Title: "e", Priority: model.PriorityLater, Completed: false, CreatedAt: "2024-06-03T09:00:00"},
	}

	rep := ComputeTaskAnalytics(tasks, nil, now)

	want := GroupStats{Total: 5, Completed: 3, Incomplete: 2, CompletionPercentage: 60.0}
	if rep.Overall != want {
		t.Errorf("overall: got %+v, want %+v", rep.Overall, want)
	}
	if got := rep.ByPriority["Now"]; got.Total != 2 || got.Completed != 2 {
		t.Errorf("by_priority.Now: %+v", got)
	}
	if got := rep.ByPriority["Later"]; got.Total != 2 || got.Completed != 0 {
		t.Errorf("by_priority.Later: %+v", got)
	}
	if rep.TimeStats.OverdueCount != 1 {
		t.Errorf("overdue_count: got %d, want 1", rep.TimeStats.OverdueCount)
	}
	if rep.TimeStats.DueSoonCount != 0 {
		t.Errorf("due_soon_count: got %d, want 0", rep.TimeStats.DueSoonCount)
	}
}

func TestOverallInvariant(t *testing.T) {
	now := testNow()
	tasks := []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityNow, Completed: true, CreatedAt: "2024-01-01"},
		{ID: 2, Title: "b", Priority: "Whenever", Completed: false, CreatedAt: "2024-01-01"},
		{ID: 3, Title: "c", Priority: model.PriorityLater, Completed: false, CreatedAt: "2024-01-01"},
	}
	rep := ComputeTaskAnalytics(tasks, nil, now)

	if rep.Overall.Completed+rep.Overall.Incomplete != rep.Overall.Total {
		t.Errorf("completed+incomplete != total: %+v", rep.Overall)
	}

	// Grouped priorities plus records with an unrecognized label cover the
	// overall total.
	grouped := 0
	for _, p := range model.Priorities() {
		grouped += rep.ByPriority[string(p)].Total
	}
	ungrouped := 0
	for _, task := range tasks {
		if !task.Priority.Valid() {
			ungrouped++
		}
	}
	if grouped+ungrouped != rep.Overall.Total {
		t.Errorf("priority groups %d + ungrouped %d != overall %d", grouped, ungrouped, rep.Overall.Total)
	}

	// Every enumerated label is present even when empty.
	if got := rep.ByPriority["Next"]; got.Total != 0 || got.CompletionPercentage != 0 {
		t.Errorf("by_priority.Next: %+v", got)
	}
}

func TestEmptyInput(t *testing.T) {
	rep := ComputeTaskAnalytics(nil, nil, testNow())
	if rep.Overall.Total != 0 || rep.Overall.CompletionPercentage != 0 {
		t.Errorf("overall: %+v", rep.Overall)
	}
	for label, stats := range rep.ByPriority {
		if stats.CompletionPercentage != 0 {
			t.Errorf("by_priority[%s] percentage: %v", label, stats.CompletionPercentage)
		}
	}
	if rep.Productivity.MostProductiveGoal != nil {
		t.Errorf("most_productive_goal: got %v, want nil", *rep.Productivity.MostProductiveGoal)
	}
	if rep.Productivity.GoalWithMostTasks != nil {
		t.Errorf("goal_with_most_tasks: got %v, want nil", *rep.Productivity.GoalWithMostTasks)
	}
	if rep.TimeStats.AvgCompletionDays != 0 {
		t.Errorf("avg_completion_days: %v", rep.TimeStats.AvgCompletionDays)
	}
}

func TestGoalBreakdown(t *testing.T) {
	now := testNow()
	goals := []model.Goal{
		{ID: 1, Title: "Health", CreatedAt: "2024-01-01"},
		{ID: 2, Title: "Career", CreatedAt: "2024-01-01"},
	}
	tasks := []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityNow, GoalID: intPtr(1), Completed: true, CreatedAt: "2024-01-01"},
		{ID: 2, Title: "b", Priority: model.PriorityNow, GoalID: intPtr(1), Completed: false, CreatedAt: "2024-01-01"},
		{ID: 3, Title: "c", Priority: model.PriorityNow, GoalID: intPtr(2), Completed: true, CreatedAt: "2024-01-01"},
		{ID: 4, Title: "d", Priority: model.PriorityNow, Completed: false, CreatedAt: "2024-01-01"},
	}
	rep := ComputeTaskAnalytics(tasks, goals, now)

	bg := rep.ByGoal
	if bg.TotalGoals != 2 {
		t.Errorf("total_goals: %d", bg.TotalGoals)
	}
	if bg.WithGoals != 3 || bg.WithoutGoals != 1 {
		t.Errorf("with=%d without=%d", bg.WithGoals, bg.WithoutGoals)
	}
	if bg.WithGoals+bg.WithoutGoals != rep.Overall.Total {
		t.Errorf("with+without != total")
	}
	health := bg.Goals[1]
	if health.GoalName != "Health" || health.Total != 2 || health.Completed != 1 || health.CompletionPercentage != 50.0 {
		t.Errorf("goal 1: %+v", health)
	}
}

func TestDanglingGoalReference(t *testing.T) {
	now := testNow()
	goals := []model.Goal{{ID: 1, Title: "Health", CreatedAt: "2024-01-01"}}
	tasks := []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityNow, GoalID: intPtr(99), Completed: false, CreatedAt: "2024-01-01"},
		{ID: 2, Title: "b", Priority: model.PriorityNow, Completed: false, CreatedAt: "2024-01-01"},
	}
	rep := ComputeTaskAnalytics(tasks, goals, now)

	// The dangling reference counts in neither bucket; only true absence
	// of goal_id is "without goal".
	if rep.ByGoal.WithGoals != 0 {
		t.Errorf("with_goals: %d", rep.ByGoal.WithGoals)
	}
	if rep.ByGoal.WithoutGoals != 1 {
		t.Errorf("without_goals: %d", rep.ByGoal.WithoutGoals)
	}
	if rep.ByGoal.Goals[1].Total != 0 {
		t.Errorf("deleted goal group: %+v", rep.ByGoal.Goals[1])
	}
}

func TestGoalDeleteCascadeReclassifies(t *testing.T) {
	now := testNow()
	goals := []model.Goal{{ID: 1, Title: "Health", CreatedAt: "2024-01-01"}}
	tasks := []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityNow, GoalID: intPtr(1), Completed: false, CreatedAt: "2024-01-01"},
	}
	before := ComputeTaskAnalytics(tasks, goals, now)
	if before.ByGoal.WithGoals != 1 {
		t.Fatalf("precondition: %+v", before.ByGoal)
	}

	// Goal deleted upstream: removed from the goal list and goal_id
	// cleared on its records.
	tasks[0].GoalID = nil
	after := ComputeTaskAnalytics(tasks, nil, now)
	if len(after.ByGoal.Goals) != 0 {
		t.Errorf("goal groups after delete: %v", after.ByGoal.Goals)
	}
	if after.ByGoal.WithoutGoals != 1 || after.ByGoal.WithGoals != 0 {
		t.Errorf("after delete: %+v", after.ByGoal)
	}
}

func TestProductivity(t *testing.T) {
	now := testNow()
	goals := []model.Goal{
		{ID: 1, Title: "Health", CreatedAt: "2024-01-01"},
		{ID: 2, Title: "Career", CreatedAt: "2024-01-01"},
		{ID: 3, Title: "Tiny", CreatedAt: "2024-01-01"},
	}
	var tasks []model.Task
	add := func(goalID int, n, completed int) {
		for i := 0; i < n; i++ {
			tasks = append(tasks, model.Task{
				ID: len(tasks) + 1, Title: "t", Priority: model.PriorityNow,
				GoalID: intPtr(goalID), Completed: i < completed, CreatedAt: "2024-01-01",
			})
		}
	}
	add(1, 4, 2) // Health: 50%
	add(2, 3, 3) // Career: 100%
	add(3, 2, 2) // Tiny: 100% but below the 3-record floor

	rep := ComputeTaskAnalytics(tasks, goals, now)
	prod := rep.Productivity

	if prod.MostProductiveGoal == nil || *prod.MostProductiveGoal != "Career" {
		t.Errorf("most_productive_goal: %v", prod.MostProductiveGoal)
	}
	if prod.MostProductiveRate != 100.0 {
		t.Errorf("most_productive_completion_rate: %v", prod.MostProductiveRate)
	}
	if prod.GoalWithMostTasks == nil || *prod.GoalWithMostTasks != "Health" {
		t.Errorf("goal_with_most_tasks: %v", prod.GoalWithMostTasks)
	}
	if prod.MaxTasksInGoal != 4 {
		t.Errorf("max_tasks_in_goal: %d", prod.MaxTasksInGoal)
	}

	sum := 0.0
	for _, v := range prod.GoalDistribution {
		sum += v
	}
	// Distribution covers only goal groups; the grand total includes all
	// records, so the sum is (4+3+2)/9 of 100 here.
	if math.Abs(sum-100.0) > 0.05 {
		t.Errorf("distribution sum: %v", sum)
	}
}

func TestProductivityTieKeepsFirstGoal(t *testing.T) {
	now := testNow()
	goals := []model.Goal{
		{ID: 1, Title: "First", CreatedAt: "2024-01-01"},
		{ID: 2, Title: "Second", CreatedAt: "2024-01-01"},
	}
	var tasks []model.Task
	for g := 1; g <= 2; g++ {
		for i := 0; i < 3; i++ {
			tasks = append(tasks, model.Task{
				ID: len(tasks) + 1, Title: "t", Priority: model.PriorityNow,
				GoalID: intPtr(g), Completed: true, CreatedAt: "2024-01-01",
			})
		}
	}
	prod := ComputeTaskAnalytics(tasks, goals, now).Productivity
	if prod.MostProductiveGoal == nil || *prod.MostProductiveGoal != "First" {
		t.Errorf("tie break: %v", prod.MostProductiveGoal)
	}
	if prod.GoalWithMostTasks == nil || *prod.GoalWithMostTasks != "First" {
		t.Errorf("most tasks tie break: %v", prod.GoalWithMostTasks)
	}
}

func TestHabitIncompleteEqualsTotal(t *testing.T) {
	now := testNow()
	today := model.DateOf(now)
	habits := []model.Habit{
		{ID: 1, Title: "Read", Priority: model.PriorityNow, Frequency: "daily",
			CheckIns: []model.CheckIn{{Date: today}}, CreatedAt: "2024-01-01"},
		{ID: 2, Title: "Run", Priority: model.PriorityNow, Frequency: "daily", CreatedAt: "2024-01-01"},
		{ID: 3, Title: "Meditate", Priority: model.PriorityLater, Frequency: "daily", CreatedAt: "2024-01-01"},
	}
	rep := ComputeHabitAnalytics(habits, nil, now)

	// Habits are perpetually active: incomplete mirrors total by design.
	if rep.Overall.Incomplete != rep.Overall.Total {
		t.Errorf("habit incomplete: got %d, want %d", rep.Overall.Incomplete, rep.Overall.Total)
	}
	if rep.Overall.Completed != 1 {
		t.Errorf("completed (checked in today): got %d, want 1", rep.Overall.Completed)
	}
	if rep.Overall.CompletionPercentage != round2(1.0/3.0*100) {
		t.Errorf("completion_percentage: %v", rep.Overall.CompletionPercentage)
	}
}

func TestAggregatorDoesNotMutateInputs(t *testing.T) {
	now := testNow()
	goalID := 1
	tasks := []model.Task{{ID: 1, Title: "a", Priority: model.PriorityNow, GoalID: &goalID, Completed: false, CreatedAt: "2024-01-01"}}
	goals := []model.Goal{{ID: 1, Title: "Health", CreatedAt: "2024-01-01"}}

	_ = ComputeTaskAnalytics(tasks, goals, now)

	if tasks[0].GoalID != &goalID || *tasks[0].GoalID != 1 || tasks[0].Completed {
		t.Errorf("task mutated: %+v", tasks[0])
	}
	if goals[0].Title != "Health" {
		t.Errorf("goal mutated: %+v", goals[0])
	}
}

func TestMalformedDatesNeverPanic(t *testing.T) {
	now := testNow()
	bad := "definitely-not-a-date"
	tasks := []model.Task{
		{ID: 1, Title: "a", Priority: model.PriorityNow, DueDate: "garbage", CreatedAt: bad},
		{ID: 2, Title: "b", Priority: model.PriorityNow, Completed: true, CreatedAt: "2024-01-01", CompletedAt: &bad},
	}
	rep := ComputeTaskAnalytics(tasks, nil, now)
	if rep.TimeStats.OverdueCount != 0 || rep.TimeStats.CompletedToday != 0 {
		t.Errorf("malformed dates counted: %+v", rep.TimeStats)
	}
	if rep.Overall.Total != 2 {
		t.Errorf("records dropped entirely: %+v", rep.Overall)
	}
}
