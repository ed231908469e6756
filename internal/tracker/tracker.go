// Package tracker implements the CRUD operations over the record store:
// tasks, habits with check-ins and streaks, and goals with cascade
// deletion. Each operation loads a snapshot, mutates it in memory, and
// saves the full list back, mirroring the store's whole-file persistence.
package tracker

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ndokic/tempo/internal/store"
)

// ErrNotFound reports that no record matched the requested ID.
var ErrNotFound = errors.New("not found")

// Service exposes the record operations over one store.
type Service struct {
	store *store.Store
	log   *log.Logger
	now   func() time.Time
}

// New returns a service over the given store.
func New(st *store.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Service{store: st, log: logger, now: time.Now}
}

// Store returns the underlying record store.
func (s *Service) Store() *store.Store {
	return s.store
}

func notFound(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}
