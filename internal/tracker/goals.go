package tracker

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndokic/tempo/internal/model"
)

// GoalProgress summarizes task completion toward one goal.
type GoalProgress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// Goals returns all stored goals.
func (s *Service) Goals() []model.Goal {
	return s.store.LoadGoals()
}

// AddGoal creates a goal.
func (s *Service) AddGoal(title, description string) (model.Goal, error) {
	if strings.TrimSpace(title) == "" {
		return model.Goal{}, fmt.Errorf("goal title is required")
	}
	goals := s.store.LoadGoals()
	ids := make([]int, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	goal := model.Goal{
		ID:          model.NextID(ids),
		Title:       title,
		Description: description,
		CreatedAt:   model.Timestamp(s.now()),
	}
	goals = append(goals, goal)
	if err := s.store.SaveGoals(goals); err != nil {
		return model.Goal{}, err
	}
	s.log.Debug("goal added", "id", goal.ID, "title", goal.Title)
	return goal, nil
}

// UpdateGoal updates the provided fields of a goal.
func (s *Service) UpdateGoal(id int, title, description *string) (model.Goal, error) {
	goals := s.store.LoadGoals()
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		g := &goals[i]
		if title != nil {
			g.Title = *title
		}
		if description != nil {
			g.Description = *description
		}
		if err := s.store.SaveGoals(goals); err != nil {
			return model.Goal{}, err
		}
		return *g, nil
	}
	return model.Goal{}, notFound("goal", id)
}

// DeleteGoal removes a goal and clears goal_id on every task and habit
// that referenced it, so no dangling references are left behind.
func (s *Service) DeleteGoal(id int) error {
	goals := s.store.LoadGoals()
	kept := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return notFound("goal", id)
	}
	if err := s.store.SaveGoals(kept); err != nil {
		return err
	}

	tasks := s.store.LoadTasks()
	changed := false
	for i := range tasks {
		if tasks[i].GoalID != nil && *tasks[i].GoalID == id {
			tasks[i].GoalID = nil
			changed = true
		}
	}
	if changed {
		if err := s.store.SaveTasks(tasks); err != nil {
			return err
		}
	}

	habits := s.store.LoadHabits()
	changed = false
	for i := range habits {
		if habits[i].GoalID != nil && *habits[i].GoalID == id {
			habits[i].GoalID = nil
			changed = true
		}
	}
	if changed {
		if err := s.store.SaveHabits(habits); err != nil {
			return err
		}
	}

	s.log.Debug("goal deleted", "id", id)
	return nil
}

// Progress reports how many tasks linked to the goal are complete.
func (s *Service) Progress(goalID int) GoalProgress {
	var p GoalProgress
	for _, t := range s.store.LoadTasks() {
		if t.GoalID == nil || *t.GoalID != goalID {
			continue
		}
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = math.Round(float64(p.Completed)/float64(p.Total)*100*100) / 100
	}
	return p
}
