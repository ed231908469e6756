package model

import (
	"encoding/json"
	"sort"
)

// Priority is the urgency bucket of a task or habit.
type Priority string

const (
	PriorityNow   Priority = "Now"
	PriorityNext  Priority = "Next"
	PriorityLater Priority = "Later"
)

// Priorities returns the closed set of known priorities in display order.
// Records carrying any other value are counted in overall totals but are
// not grouped under a priority label.
func Priorities() []Priority {
	return []Priority{PriorityNow, PriorityNext, PriorityLater}
}

// Valid reports whether p is one of the known priority labels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNow, PriorityNext, PriorityLater:
		return true
	}
	return false
}

// Habit frequencies.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
	FrequencyCustom = "custom"
)

// Task is a single to-do item.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"`
	GoalID      *int     `json:"goal_id,omitempty"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"created_at"`
	CompletedAt *string  `json:"completed_at"`
}

// CheckIn is a dated activity marker for a habit. TimeSpent is minutes and
// only present for time-tracking habits.
type CheckIn struct {
	Date      string   `json:"date"`
	TimeSpent *float64 `json:"time_spent,omitempty"`
}

// UnmarshalJSON accepts both the current object form and the legacy plain
// date string form ("2024-01-01"), canonicalizing at the store boundary so
// nothing downstream has to sniff shapes.
func (c *CheckIn) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var date string
		if err := json.Unmarshal(data, &date); err != nil {
			return err
		}
		*c = CheckIn{Date: date}
		return nil
	}
	type plain CheckIn
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CheckIn(p)
	return nil
}

// Habit is a recurring activity tracked by daily check-ins.
type Habit struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Frequency   string    `json:"frequency"`
	CheckIns    []CheckIn `json:"check_ins"`
	TrackTime   bool      `json:"track_time"`
	GoalID      *int      `json:"goal_id,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// CheckInOn returns the index of the check-in on the given calendar date,
// or -1 if there is none. Check-ins are unique per date.
func (h *Habit) CheckInOn(date string) int {
	for i := range h.CheckIns {
		if h.CheckIns[i].Date == date {
			return i
		}
	}
	return -1
}

// CheckedInOn reports whether the habit has a check-in on the given date.
func (h *Habit) CheckedInOn(date string) bool {
	return h.CheckInOn(date) >= 0
}

// SortCheckIns orders check-ins by date ascending. ISO dates sort
// correctly as strings.
func (h *Habit) SortCheckIns() {
	sort.Slice(h.CheckIns, func(i, j int) bool {
		return h.CheckIns[i].Date < h.CheckIns[j].Date
	})
}

// Goal is a long-term objective that tasks and habits can link to.
type Goal struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// NextID returns max(ids)+1, starting at 1 for an empty set. IDs are never
// reused after deletion.
func NextID(ids []int) int {
	max := 0
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
