package mapping

import (
	"context"
	"errors"
	"time"
)

// Snapshot is an immutable in-memory view of the active mapping entries and
// defaults at one point in time. The resolver and validator read only from
// a Snapshot, never from ambient state, so a validation pass over a batch of
// orders is deterministic and free of partial reads. When the repository
// changes, callers take a fresh Snapshot and re-run aggregation.
type Snapshot struct {
	entries  map[Category][]Entry
	defaults map[Category]Default

	// TakenAt is when this snapshot was loaded
	TakenAt time.Time
}

// NewSnapshot builds a snapshot from pre-loaded entries and defaults.
// Inactive entries are dropped; entry order within a category is preserved.
func NewSnapshot(entries []Entry, defaults []Default) *Snapshot {
	s := &Snapshot{
		entries:  make(map[Category][]Entry),
		defaults: make(map[Category]Default),
		TakenAt:  time.Now(),
	}
	for _, e := range entries {
		if !e.IsActive {
			continue
		}
		s.entries[e.Category] = append(s.entries[e.Category], e)
	}
	for _, d := range defaults {
		s.defaults[d.Category] = d
	}
	return s
}

// TakeSnapshot loads the active entries of every category (and any
// configured defaults) from the repository into a Snapshot.
func TakeSnapshot(ctx context.Context, repo Repository) (*Snapshot, error) {
	s := &Snapshot{
		entries:  make(map[Category][]Entry),
		defaults: make(map[Category]Default),
		TakenAt:  time.Now(),
	}
	for _, category := range AllCategories {
		entries, err := repo.ListActive(ctx, category)
		if err != nil {
			return nil, err
		}
		s.entries[category] = entries

		def, err := repo.GetDefault(ctx, category)
		switch {
		case err == nil:
			s.defaults[category] = *def
		case errors.Is(err, ErrDefaultNotFound):
			// No default configured; lookups simply miss.
		default:
			return nil, err
		}
	}
	return s, nil
}

// Entries returns the active entries of a category in creation order
func (s *Snapshot) Entries(category Category) []Entry {
	return s.entries[category]
}

// Default returns the configured default for a category, if any
func (s *Snapshot) Default(category Category) (Default, bool) {
	d, ok := s.defaults[category]
	return d, ok
}
