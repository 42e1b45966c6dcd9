package payout

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPayoutNotFound  = errors.New("payout: payout not found")
	ErrSettingNotFound = errors.New("payout: setting not found")
	ErrInvalidSetting  = errors.New("payout: setting needs a name, a type and a value")
)

// Repository defines the interface for the local payout store
type Repository interface {
	// FindByID finds a stored payout with its transactions
	FindByID(ctx context.Context, id int64) (*Payout, error)

	// List returns stored payouts with transactions, newest date first
	List(ctx context.Context) ([]Payout, error)

	// Save inserts a payout and its transactions atomically, or leaves an
	// existing payout untouched. Returns true if newly inserted.
	Save(ctx context.Context, p *Payout) (bool, error)
}

// SettingRepository defines the interface for payout settings
type SettingRepository interface {
	// FindSettingByID finds a setting by its ID
	FindSettingByID(ctx context.Context, id uuid.UUID) (*Setting, error)

	// ListSettings returns every setting, ordered by name
	ListSettings(ctx context.Context) ([]Setting, error)

	// CreateSetting inserts a new setting
	CreateSetting(ctx context.Context, s *Setting) error

	// UpdateSetting saves changes to an existing setting
	UpdateSetting(ctx context.Context, s *Setting) error
}
