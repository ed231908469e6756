package tracker

import (
	"fmt"
	"strings"

	"github.com/ndokic/tempo/internal/model"
)

// TaskUpdate is a partial update; nil fields are left unchanged. ClearGoal
// unlinks the task from its goal.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	DueDate     *string
	GoalID      *int
	ClearGoal   bool
}

// TaskFilter selects tasks matching all set criteria.
type TaskFilter struct {
	Priority  model.Priority
	Completed *bool
	DueDate   string
	GoalID    *int
}

// Tasks returns all stored tasks.
func (s *Service) Tasks() []model.Task {
	return s.store.LoadTasks()
}

// AddTask creates a task. Priority defaults to Next when empty.
func (s *Service) AddTask(title, description string, priority model.Priority, dueDate string, goalID *int) (model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, fmt.Errorf("task title is required")
	}
	if priority == "" {
		priority = model.PriorityNext
	}

	tasks := s.store.LoadTasks()
	ids := make([]int, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	task := model.Task{
		ID:          model.NextID(ids),
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		GoalID:      goalID,
		Completed:   false,
		CreatedAt:   model.Timestamp(s.now()),
	}
	tasks = append(tasks, task)
	if err := s.store.SaveTasks(tasks); err != nil {
		return model.Task{}, err
	}
	s.log.Debug("task added", "id", task.ID, "title", task.Title)
	return task, nil
}

// UpdateTask applies a partial update to the task with the given ID.
func (s *Service) UpdateTask(id int, upd TaskUpdate) (model.Task, error) {
	tasks := s.store.LoadTasks()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		if upd.DueDate != nil {
			t.DueDate = *upd.DueDate
		}
		if upd.ClearGoal {
			t.GoalID = nil
		} else if upd.GoalID != nil {
			t.GoalID = upd.GoalID
		}
		if err := s.store.SaveTasks(tasks); err != nil {
			return model.Task{}, err
		}
		return *t, nil
	}
	return model.Task{}, notFound("task", id)
}

// ToggleTask flips completion. Completing records the timestamp;
// un-completing clears it.
func (s *Service) ToggleTask(id int) (model.Task, error) {
	tasks := s.store.LoadTasks()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		t.Completed = !t.Completed
		if t.Completed {
			ts := model.Timestamp(s.now())
			t.CompletedAt = &ts
		} else {
			t.CompletedAt = nil
		}
		if err := s.store.SaveTasks(tasks); err != nil {
			return model.Task{}, err
		}
		s.log.Debug("task toggled", "id", id, "completed", t.Completed)
		return *t, nil
	}
	return model.Task{}, notFound("task", id)
}

// DeleteTask removes a task permanently. The ID is not reused.
func (s *Service) DeleteTask(id int) error {
	tasks := s.store.LoadTasks()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return notFound("task", id)
	}
	return s.store.SaveTasks(kept)
}

// SearchTasks matches the query case-insensitively against title and
// description.
func (s *Service) SearchTasks(query string) []model.Task {
	q := strings.ToLower(query)
	var matched []model.Task
	for _, t := range s.store.LoadTasks() {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			matched = append(matched, t)
		}
	}
	return matched
}

// FilterTasks returns tasks matching every set criterion (ANDed).
func (s *Service) FilterTasks(f TaskFilter) []model.Task {
	var matched []model.Task
	for _, t := range s.store.LoadTasks() {
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.DueDate != "" && t.DueDate != f.DueDate {
			continue
		}
		if f.GoalID != nil && (t.GoalID == nil || *t.GoalID != *f.GoalID) {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}
