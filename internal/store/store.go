// Package store persists tasks, habits, and goals as flat JSON files.
//
// Loads return a consistent snapshot and reduce every failure mode
// (missing file, corrupt JSON) to an empty list, so callers never see a
// read error. Saves write to a sibling temp file under an exclusive
// advisory lock and atomically rename over the target; reads take a
// shared lock on the same lock file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/ndokic/tempo/internal/model"
)

// Data file names inside the store directory.
const (
	tasksFile  = "tasks.json"
	habitsFile = "habits.json"
	goalsFile  = "goals.json"
)

// Store reads and writes the JSON data files in a single directory. The
// directory is an explicit constructor argument; there is no ambient
// package-level path state.
type Store struct {
	dir string
	log *log.Logger
}

// New creates the data directory if needed and returns a store over it.
func New(dir string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Store{dir: dir, log: logger}, nil
}

// Dir returns the data directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// LoadTasks returns all tasks, or an empty slice if the backing file is
// missing or unreadable.
func (s *Store) LoadTasks() []model.Task {
	var tasks []model.Task
	loadJSON(s, tasksFile, &tasks)
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

// SaveTasks persists the full task list.
func (s *Store) SaveTasks(tasks []model.Task) error {
	return s.saveJSON(tasksFile, tasks)
}

// LoadHabits returns all habits, or an empty slice if the backing file is
// missing or unreadable. Legacy plain-date check-ins are canonicalized
// during unmarshaling.
func (s *Store) LoadHabits() []model.Habit {
	var habits []model.Habit
	loadJSON(s, habitsFile, &habits)
	if habits == nil {
		habits = []model.Habit{}
	}
	return habits
}

// SaveHabits persists the full habit list.
func (s *Store) SaveHabits(habits []model.Habit) error {
	return s.saveJSON(habitsFile, habits)
}

// LoadGoals returns all goals, or an empty slice if the backing file is
// missing or unreadable.
func (s *Store) LoadGoals() []model.Goal {
	var goals []model.Goal
	loadJSON(s, goalsFile, &goals)
	if goals == nil {
		goals = []model.Goal{}
	}
	return goals
}

// SaveGoals persists the full goal list.
func (s *Store) SaveGoals(goals []model.Goal) error {
	return s.saveJSON(goalsFile, goals)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// lockPath returns the lock file guarding a data file. The lock lives
// beside the data file rather than on it because the rename in saveJSON
// replaces the data file's inode.
func (s *Store) lockPath(name string) string {
	return s.path(name) + ".lock"
}

// loadJSON reads a data file under a shared lock into v. Any failure is
// logged and leaves v untouched. Decoding goes through a copy because
// json.Unmarshal populates the destination before reporting a
// mid-document type error, and a half-decoded list must never escape.
func loadJSON[T any](s *Store, name string, v *[]T) {
	path := s.path(name)
	if _, err := os.Stat(path); err != nil {
		return
	}

	lock := flock.New(s.lockPath(name))
	if err := lock.RLock(); err != nil {
		s.log.Warn("acquire shared lock", "file", name, "err", err)
		return
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("read data file", "file", name, "err", err)
		return
	}
	var decoded []T
	if err := json.Unmarshal(data, &decoded); err != nil {
		s.log.Warn("parse data file, treating as empty", "file", name, "err", err)
		return
	}
	*v = decoded
}

// saveJSON writes v to a sibling temp file under an exclusive lock, then
// renames it over the target.
func (s *Store) saveJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	lock := flock.New(s.lockPath(name))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire exclusive lock for %s: %w", name, err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file for %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file for %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file for %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
