package mapping

import (
	"context"

	"github.com/google/uuid"
)

// EntryReader defines the interface for reading mapping entries
type EntryReader interface {
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// List lists every entry of a category, active or not, oldest first
	List(ctx context.Context, category Category) ([]Entry, error)

	// ListActive lists the active entries of a category, oldest first.
	// Creation order matters: the resolver takes the first match.
	ListActive(ctx context.Context, category Category) ([]Entry, error)

	// ActiveSourceCodeExists reports whether an active entry of the category
	// already claims the given source code
	ActiveSourceCodeExists(ctx context.Context, category Category, sourceCode string) (bool, error)
}

// EntryWriter defines the interface for persisting mapping entries
type EntryWriter interface {
	// Create inserts a new entry
	Create(ctx context.Context, entry *Entry) error

	// Update saves changes to an existing entry
	Update(ctx context.Context, entry *Entry) error

	// Delete removes an entry. Entries are owned by nothing else, so
	// deletion has no cascade concerns.
	Delete(ctx context.Context, id uuid.UUID) error
}

// DefaultStore defines the interface for per-category fallback values
type DefaultStore interface {
	// GetDefault returns the default for a category, or ErrDefaultNotFound
	GetDefault(ctx context.Context, category Category) (*Default, error)

	// SetDefault creates or replaces the default for a category
	SetDefault(ctx context.Context, def *Default) error
}

// Repository defines the full interface for mapping persistence
type Repository interface {
	EntryReader
	EntryWriter
	DefaultStore
}
