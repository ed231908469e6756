package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/ndokic/tempo/internal/model"
	"github.com/ndokic/tempo/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	svc := New(st, nil)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 12, 15, 0, 0, 0, time.Local)
	}
	return svc
}

func intPtr(v int) *int { return &v }

func f64Ptr(v float64) *float64 { return &v }

func priPtr(p model.Priority) *model.Priority { return &p }

func TestAddTaskDefaults(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.AddTask("Buy groceries", "", "", "", nil)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("ID: got %d, want 1", task.ID)
	}
	if task.Priority != model.PriorityNext {
		t.Errorf("Priority default: got %s", task.Priority)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Errorf("new task must be incomplete: %+v", task)
	}
	if task.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
}

func TestAddTaskRequiresTitle(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AddTask("  ", "", "", "", nil); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	svc := newTestService(t)
	svc.AddTask("one", "", "", "", nil)
	second, _ := svc.AddTask("two", "", "", "", nil)
	if err := svc.DeleteTask(second.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	third, _ := svc.AddTask("three", "", "", "", nil)
	if third.ID != 3 {
		t.Errorf("ID after delete: got %d, want 3", third.ID)
	}
}

func TestToggleTask(t *testing.T) {
	svc := newTestService(t)
	task, _ := svc.AddTask("one", "", "", "", nil)

	done, err := svc.ToggleTask(task.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Errorf("after complete: %+v", done)
	}

	undone, err := svc.ToggleTask(task.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Errorf("after uncomplete: %+v", undone)
	}
}

func TestToggleMissingTask(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ToggleTask(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	svc := newTestService(t)
	task, _ := svc.AddTask("one", "desc", model.PriorityLater, "", intPtr(4))

	title := "renamed"
	updated, err := svc.UpdateTask(task.ID, TaskUpdate{Title: &title, Priority: priPtr(model.PriorityNow)})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "renamed" || updated.Priority != model.PriorityNow {
		t.Errorf("updated: %+v", updated)
	}
	if updated.Description != "desc" || updated.GoalID == nil {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	cleared, err := svc.UpdateTask(task.ID, TaskUpdate{ClearGoal: true})
	if err != nil {
		t.Fatal(err)
	}
	if cleared.GoalID != nil {
		t.Errorf("goal not cleared: %+v", cleared)
	}
}

func TestSearchAndFilterTasks(t *testing.T) {
	svc := newTestService(t)
	svc.AddTask("Write report", "quarterly numbers", model.PriorityNow, "", nil)
	svc.AddTask("Call plumber", "kitchen sink", model.PriorityLater, "", intPtr(1))
	first, _ := svc.ToggleTask(1)
	_ = first

	if got := svc.SearchTasks("REPORT"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("search title: %+v", got)
	}
	if got := svc.SearchTasks("sink"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("search description: %+v", got)
	}

	completed := true
	if got := svc.FilterTasks(TaskFilter{Completed: &completed}); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("filter completed: %+v", got)
	}
	if got := svc.FilterTasks(TaskFilter{Priority: model.PriorityLater, GoalID: intPtr(1)}); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("filter ANDed: %+v", got)
	}
	if got := svc.FilterTasks(TaskFilter{Priority: model.PriorityLater, GoalID: intPtr(9)}); len(got) != 0 {
		t.Errorf("filter mismatch: %+v", got)
	}
}

func TestCheckInIdempotentPerDate(t *testing.T) {
	svc := newTestService(t)
	habit, _ := svc.AddHabit("Read", "", "", "", nil, false)

	if _, err := svc.CheckIn(habit.ID, "2024-01-01", nil); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	again, err := svc.CheckIn(habit.ID, "2024-01-01", nil)
	if err != nil {
		t.Fatalf("CheckIn again: %v", err)
	}
	if len(again.CheckIns) != 1 {
		t.Errorf("check_ins length: got %d, want 1", len(again.CheckIns))
	}
}

func TestCheckInRecordsTimeOnlyWhenTracking(t *testing.T) {
	svc := newTestService(t)
	tracking, _ := svc.AddHabit("Deep work", "", "", "", nil, true)
	plain, _ := svc.AddHabit("Walk", "", "", "", nil, false)

	h, _ := svc.CheckIn(tracking.ID, "2024-01-01", f64Ptr(90))
	if h.CheckIns[0].TimeSpent == nil || *h.CheckIns[0].TimeSpent != 90 {
		t.Errorf("tracked time lost: %+v", h.CheckIns[0])
	}

	// Re-check-in overwrites the recorded time.
	h, _ = svc.CheckIn(tracking.ID, "2024-01-01", f64Ptr(120))
	if len(h.CheckIns) != 1 || *h.CheckIns[0].TimeSpent != 120 {
		t.Errorf("overwrite: %+v", h.CheckIns)
	}

	p, _ := svc.CheckIn(plain.ID, "2024-01-01", f64Ptr(90))
	if p.CheckIns[0].TimeSpent != nil {
		t.Errorf("non-tracking habit stored time: %+v", p.CheckIns[0])
	}
}

func TestCheckInsStaySorted(t *testing.T) {
	svc := newTestService(t)
	habit, _ := svc.AddHabit("Read", "", "", "", nil, false)
	svc.CheckIn(habit.ID, "2024-02-01", nil)
	svc.CheckIn(habit.ID, "2024-01-15", nil)
	h, _ := svc.CheckIn(habit.ID, "2024-01-20", nil)

	want := []string{"2024-01-15", "2024-01-20", "2024-02-01"}
	for i, w := range want {
		if h.CheckIns[i].Date != w {
			t.Errorf("check_ins[%d]: got %s, want %s", i, h.CheckIns[i].Date, w)
		}
	}
}

func TestUncheck(t *testing.T) {
	svc := newTestService(t)
	habit, _ := svc.AddHabit("Read", "", "", "", nil, false)
	svc.CheckIn(habit.ID, "2024-01-01", nil)
	h, err := svc.Uncheck(habit.ID, "2024-01-01")
	if err != nil {
		t.Fatalf("Uncheck: %v", err)
	}
	if len(h.CheckIns) != 0 {
		t.Errorf("check_ins after uncheck: %+v", h.CheckIns)
	}
}

func TestStreak(t *testing.T) {
	svc := newTestService(t)
	now := svc.now()
	today := model.DateOf(now)
	yesterday := model.DateOf(now.AddDate(0, 0, -1))
	twoAgo := model.DateOf(now.AddDate(0, 0, -2))
	fiveAgo := model.DateOf(now.AddDate(0, 0, -5))

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"no check-ins", nil, 0},
		{"today only", []string{today}, 1},
		{"three consecutive ending today", []string{twoAgo, yesterday, today}, 3},
		{"alive via yesterday", []string{twoAgo, yesterday}, 2},
		{"broken streak", []string{fiveAgo}, 0},
		{"gap stops the count", []string{fiveAgo, yesterday, today}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit, _ := svc.AddHabit("h-"+tt.name, "", "", "", nil, false)
			for _, d := range tt.dates {
				if _, err := svc.CheckIn(habit.ID, d, nil); err != nil {
					t.Fatal(err)
				}
			}
			got, err := svc.Streak(habit.ID)
			if err != nil {
				t.Fatalf("Streak: %v", err)
			}
			if got != tt.want {
				t.Errorf("streak: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGoalDeleteCascade(t *testing.T) {
	svc := newTestService(t)
	goal, _ := svc.AddGoal("Health", "")
	other, _ := svc.AddGoal("Career", "")
	svc.AddTask("Run 5k", "", "", "", intPtr(goal.ID))
	svc.AddTask("Study", "", "", "", intPtr(other.ID))
	svc.AddHabit("Stretch", "", "", "", intPtr(goal.ID), false)

	if err := svc.DeleteGoal(goal.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}

	for _, task := range svc.Tasks() {
		if task.Title == "Run 5k" && task.GoalID != nil {
			t.Errorf("task goal_id not cleared: %+v", task)
		}
		if task.Title == "Study" && (task.GoalID == nil || *task.GoalID != other.ID) {
			t.Errorf("unrelated task touched: %+v", task)
		}
	}
	for _, habit := range svc.Habits() {
		if habit.GoalID != nil {
			t.Errorf("habit goal_id not cleared: %+v", habit)
		}
	}
	if got := svc.Goals(); len(got) != 1 || got[0].ID != other.ID {
		t.Errorf("goals after delete: %+v", got)
	}
}

func TestGoalProgress(t *testing.T) {
	svc := newTestService(t)
	goal, _ := svc.AddGoal("Health", "")
	a, _ := svc.AddTask("a", "", "", "", intPtr(goal.ID))
	svc.AddTask("b", "", "", "", intPtr(goal.ID))
	svc.AddTask("c", "", "", "", nil)
	svc.ToggleTask(a.ID)

	p := svc.Progress(goal.ID)
	if p.Total != 2 || p.Completed != 1 || p.Percentage != 50.0 {
		t.Errorf("progress: %+v", p)
	}

	if empty := svc.Progress(999); empty.Total != 0 || empty.Percentage != 0 {
		t.Errorf("empty progress: %+v", empty)
	}
}
