package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndokic/tempo/internal/model"
)

// HabitUpdate is a partial update; nil fields are left unchanged.
type HabitUpdate struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Frequency   *string
	TrackTime   *bool
	GoalID      *int
	ClearGoal   bool
}

// HabitFilter selects habits matching all set criteria.
type HabitFilter struct {
	Priority  model.Priority
	Frequency string
	GoalID    *int
}

// Habits returns all stored habits.
func (s *Service) Habits() []model.Habit {
	return s.store.LoadHabits()
}

// AddHabit creates a habit. Priority defaults to Next and frequency to
// daily when empty.
func (s *Service) AddHabit(title, description string, priority model.Priority, frequency string, goalID *int, trackTime bool) (model.Habit, error) {
	if strings.TrimSpace(title) == "" {
		return model.Habit{}, fmt.Errorf("habit title is required")
	}
	if priority == "" {
		priority = model.PriorityNext
	}
	if frequency == "" {
		frequency = model.FrequencyDaily
	}

	habits := s.store.LoadHabits()
	ids := make([]int, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}

	habit := model.Habit{
		ID:          model.NextID(ids),
		Title:       title,
		Description: description,
		Priority:    priority,
		Frequency:   frequency,
		CheckIns:    []model.CheckIn{},
		TrackTime:   trackTime,
		GoalID:      goalID,
		CreatedAt:   model.Timestamp(s.now()),
	}
	habits = append(habits, habit)
	if err := s.store.SaveHabits(habits); err != nil {
		return model.Habit{}, err
	}
	s.log.Debug("habit added", "id", habit.ID, "title", habit.Title)
	return habit, nil
}

// UpdateHabit applies a partial update to the habit with the given ID.
func (s *Service) UpdateHabit(id int, upd HabitUpdate) (model.Habit, error) {
	habits := s.store.LoadHabits()
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		h := &habits[i]
		if upd.Title != nil {
			h.Title = *upd.Title
		}
		if upd.Description != nil {
			h.Description = *upd.Description
		}
		if upd.Priority != nil {
			h.Priority = *upd.Priority
		}
		if upd.Frequency != nil {
			h.Frequency = *upd.Frequency
		}
		if upd.TrackTime != nil {
			h.TrackTime = *upd.TrackTime
		}
		if upd.ClearGoal {
			h.GoalID = nil
		} else if upd.GoalID != nil {
			h.GoalID = upd.GoalID
		}
		if err := s.store.SaveHabits(habits); err != nil {
			return model.Habit{}, err
		}
		return *h, nil
	}
	return model.Habit{}, notFound("habit", id)
}

// DeleteHabit removes a habit permanently.
func (s *Service) DeleteHabit(id int) error {
	habits := s.store.LoadHabits()
	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(habits) {
		return notFound("habit", id)
	}
	return s.store.SaveHabits(kept)
}

// CheckIn records a check-in for a date (today when empty). Check-ins are
// unique per date: re-checking the same date overwrites the recorded time
// for time-tracking habits and is otherwise a no-op. The reported minutes
// are only stored when the habit tracks time.
func (s *Service) CheckIn(id int, date string, timeSpent *float64) (model.Habit, error) {
	if date == "" {
		date = model.DateOf(s.now())
	}
	habits := s.store.LoadHabits()
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		h := &habits[i]

		entry := model.CheckIn{Date: date}
		if timeSpent != nil && h.TrackTime {
			entry.TimeSpent = timeSpent
		}

		if idx := h.CheckInOn(date); idx >= 0 {
			if entry.TimeSpent != nil {
				h.CheckIns[idx] = entry
			}
		} else {
			h.CheckIns = append(h.CheckIns, entry)
			h.SortCheckIns()
		}

		if err := s.store.SaveHabits(habits); err != nil {
			return model.Habit{}, err
		}
		s.log.Debug("habit checked in", "id", id, "date", date)
		return *h, nil
	}
	return model.Habit{}, notFound("habit", id)
}

// Uncheck removes the check-in for a date (today when empty).
func (s *Service) Uncheck(id int, date string) (model.Habit, error) {
	if date == "" {
		date = model.DateOf(s.now())
	}
	habits := s.store.LoadHabits()
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		h := &habits[i]
		kept := h.CheckIns[:0]
		for _, ci := range h.CheckIns {
			if ci.Date != date {
				kept = append(kept, ci)
			}
		}
		h.CheckIns = kept
		if err := s.store.SaveHabits(habits); err != nil {
			return model.Habit{}, err
		}
		return *h, nil
	}
	return model.Habit{}, notFound("habit", id)
}

// Streak returns the current consecutive-day streak. The streak is alive
// when the habit was checked in today or yesterday and counts backward
// from there; otherwise it is 0.
func (s *Service) Streak(id int) (int, error) {
	habits := s.store.LoadHabits()
	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		return streak(&habits[i], s.now()), nil
	}
	return 0, notFound("habit", id)
}

func streak(h *model.Habit, now time.Time) int {
	if len(h.CheckIns) == 0 {
		return 0
	}
	dates := make(map[string]bool, len(h.CheckIns))
	for _, ci := range h.CheckIns {
		dates[ci.Date] = true
	}

	start := now
	if !dates[model.DateOf(start)] {
		start = now.AddDate(0, 0, -1)
		if !dates[model.DateOf(start)] {
			return 0
		}
	}

	count := 0
	for day := start; dates[model.DateOf(day)]; day = day.AddDate(0, 0, -1) {
		count++
	}
	return count
}

// SearchHabits matches the query case-insensitively against title and
// description.
func (s *Service) SearchHabits(query string) []model.Habit {
	q := strings.ToLower(query)
	var matched []model.Habit
	for _, h := range s.store.LoadHabits() {
		if strings.Contains(strings.ToLower(h.Title), q) ||
			strings.Contains(strings.ToLower(h.Description), q) {
			matched = append(matched, h)
		}
	}
	return matched
}

// FilterHabits returns habits matching every set criterion (ANDed).
func (s *Service) FilterHabits(f HabitFilter) []model.Habit {
	var matched []model.Habit
	for _, h := range s.store.LoadHabits() {
		if f.Priority != "" && h.Priority != f.Priority {
			continue
		}
		if f.Frequency != "" && h.Frequency != f.Frequency {
			continue
		}
		if f.GoalID != nil && (h.GoalID == nil || *h.GoalID != *f.GoalID) {
			continue
		}
		matched = append(matched, h)
	}
	return matched
}
