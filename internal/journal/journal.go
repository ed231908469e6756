// Package journal stores journal entries as individual JSON files in a
// date-derived folder hierarchy: <dir>/YYYY/MM/Week_NN/entry_<ts>.json.
// Weeks are day-of-month sevenths (days 1-7 are Week_01), not ISO weeks.
package journal

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/ndokic/tempo/internal/model"
)

// Entry is one journal entry. The ID is the file name without extension.
type Entry struct {
	ID              string `json:"id"`
	Content         string `json:"content"`
	Date            string `json:"date"`
	DurationSeconds int    `json:"duration_seconds"`
	Continued       bool   `json:"continued"`
	CreatedAt       string `json:"created_at"`
}

// Journal reads and writes entries under one base directory.
type Journal struct {
	dir string
	now func() time.Time
}

// New creates the base directory if needed and returns a journal over it.
func New(dir string) (*Journal, error) {
	if dir == "" {
		return nil, fmt.Errorf("journal: directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &Journal{dir: dir, now: time.Now}, nil
}

// Save writes a new entry stamped with the current time.
func (j *Journal) Save(content string, durationSeconds int, continued bool) (Entry, error) {
	now := j.now()
	path := j.entryPath(now)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Entry{}, fmt.Errorf("create entry dir: %w", err)
	}

	// Filenames have one-second resolution; a second save within the same
	// second gets a numeric suffix instead of overwriting the first.
	base := strings.TrimSuffix(path, ".json")
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = fmt.Sprintf("%s_%02d.json", base, n)
	}

	entry := Entry{
		ID:              strings.TrimSuffix(filepath.Base(path), ".json"),
		Content:         content,
		Date:            model.Timestamp(now),
		DurationSeconds: durationSeconds,
		Continued:       continued,
		CreatedAt:       model.Timestamp(now),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return Entry{}, fmt.Errorf("marshal entry: %w", err)
	}
	data = append(data, '\n')

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return Entry{}, fmt.Errorf("lock entry: %w", err)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return Entry{}, fmt.Errorf("write entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return Entry{}, fmt.Errorf("replace entry: %w", err)
	}
	return entry, nil
}

// entryPath derives the storage path for an entry written at t.
func (j *Journal) entryPath(t time.Time) string {
	week := ((t.Day() - 1) / 7) + 1
	name := fmt.Sprintf("entry_%s.json", t.Format("2006-01-02_15-04-05"))
	return filepath.Join(
		j.dir,
		t.Format("2006"),
		t.Format("01"),
		fmt.Sprintf("Week_%02d", week),
		name,
	)
}

// Recent returns entries from the last N days, newest first.
func (j *Journal) Recent(days int) ([]Entry, error) {
	cutoff := j.now().AddDate(0, 0, -days)
	return j.collect(func(e Entry) bool {
		date, ok := model.ParseTimestamp(e.Date)
		if !ok {
			if date, ok = model.ParseTimestamp(e.CreatedAt); !ok {
				return false
			}
		}
		return !date.Before(cutoff)
	})
}

// All returns every entry, newest first.
func (j *Journal) All() ([]Entry, error) {
	return j.collect(func(Entry) bool { return true })
}

// Search returns entries whose content matches the query,
// case-insensitively, newest first.
func (j *Journal) Search(query string) ([]Entry, error) {
	q := strings.ToLower(query)
	return j.collect(func(e Entry) bool {
		return strings.Contains(strings.ToLower(e.Content), q)
	})
}

// collect walks the folder hierarchy and gathers entries passing keep.
// Corrupt or unreadable entry files are skipped.
func (j *Journal) collect(keep func(Entry) bool) ([]Entry, error) {
	entries := []Entry{}
	err := filepath.WalkDir(j.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), "entry_") || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		entry, ok := readEntry(path)
		if ok && keep(entry) {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk journal dir: %w", err)
	}

	sort.Slice(entries, func(i, k int) bool {
		return entries[i].Date > entries[k].Date
	})
	return entries, nil
}

func readEntry(path string) (Entry, bool) {
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return Entry{}, false
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}
