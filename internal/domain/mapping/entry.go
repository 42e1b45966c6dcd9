package mapping

import (
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// AccountScope
// ---------------------------------------------------------------------------

// AccountScope scopes whether an entry applies to every ERP account or a
// single one. It is carried for the export pipeline; the validator ignores
// it.
type AccountScope string

const (
	// ScopeAllAccounts applies the entry globally
	ScopeAllAccounts AccountScope = "all"
	// ScopeSingleAccount applies the entry to one account only
	ScopeSingleAccount AccountScope = "single"
	// ScopeNotApplicable marks the scope as irrelevant for this entry
	ScopeNotApplicable AccountScope = "n/a"
)

// IsValid returns true if the scope is one of the known set
func (s AccountScope) IsValid() bool {
	switch s {
	case ScopeAllAccounts, ScopeSingleAccount, ScopeNotApplicable:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Entry Entity
// ---------------------------------------------------------------------------

// Entry represents one mapping between a storefront-side value and an
// ERP-side identifier. This is an Entity (not Aggregate Root): it has
// identity and is mutable, but no lifecycle events of its own.
//
// An entry is either coded (matched by exact SourceCode) or fixed (supplies
// a constant value regardless of source); at least one of SourceCode and
// SourceFixedValue must be present.
type Entry struct {
	// ID is the unique identifier of this entry
	ID uuid.UUID
	// Category identifies which mapping table this entry belongs to
	Category Category
	// SourceCode is the storefront code this entry matches, e.g. a payment
	// gateway name ("visa") or a field name ("payment_gateway_names")
	SourceCode string
	// SourceFixedValue is the constant value a fixed entry supplies
	SourceFixedValue string
	// TargetID is the ERP internal ID or field name this entry resolves to
	TargetID string
	// Kind is set for the field categories only; see Kind.AllowedFor
	Kind Kind
	// AccountScope scopes the entry for the export pipeline
	AccountScope AccountScope
	// IsActive indicates if this entry currently satisfies lookups
	IsActive bool
	// CustomFieldID is the operator-supplied field ID for KindCustom entries
	CustomFieldID string
	// CreatedAt is when this entry was created
	CreatedAt time.Time
	// UpdatedAt is when this entry was last updated
	UpdatedAt time.Time
}

// NewEntry creates a new active coded entry. This is the gap-resolution
// path: an operator supplies the unresolved source code and the ERP target.
func NewEntry(category Category, sourceCode, targetID string) (*Entry, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if sourceCode == "" {
		return nil, ErrEmptySourceCode
	}
	if targetID == "" {
		return nil, ErrEmptyTargetID
	}

	now := time.Now()
	return &Entry{
		ID:           uuid.New(),
		Category:     category,
		SourceCode:   sourceCode,
		TargetID:     targetID,
		AccountScope: ScopeNotApplicable,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewFixedEntry creates a new active fixed-value entry for a field category.
func NewFixedEntry(category Category, fixedValue, targetID string) (*Entry, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if fixedValue == "" {
		return nil, ErrNoSource
	}
	if targetID == "" {
		return nil, ErrEmptyTargetID
	}
	if !KindFixed.AllowedFor(category) {
		return nil, ErrInvalidKind
	}

	now := time.Now()
	return &Entry{
		ID:               uuid.New(),
		Category:         category,
		SourceFixedValue: fixedValue,
		TargetID:         targetID,
		Kind:             KindFixed,
		AccountScope:     ScopeNotApplicable,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Validate validates the entry invariants
func (e *Entry) Validate() error {
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if e.SourceCode == "" && e.SourceFixedValue == "" {
		return ErrNoSource
	}
	if e.TargetID == "" {
		return ErrEmptyTargetID
	}
	if e.Kind != "" && !e.Kind.AllowedFor(e.Category) {
		return ErrInvalidKind
	}
	if e.Kind == KindCustom && e.CustomFieldID == "" {
		return ErrMissingCustomField
	}
	return nil
}

// IsCoded returns true if the entry is matched by source code
func (e *Entry) IsCoded() bool {
	return e.SourceCode != ""
}

// Matches returns true if an active coded entry matches the given source
// code. The comparison is exact: no trimming, no case folding.
func (e *Entry) Matches(sourceCode string) bool {
	return e.IsActive && e.SourceCode != "" && e.SourceCode == sourceCode
}

// Retarget points the entry at a different ERP identifier
func (e *Entry) Retarget(targetID string) error {
	if targetID == "" {
		return ErrEmptyTargetID
	}
	e.TargetID = targetID
	e.UpdatedAt = time.Now()
	return nil
}

// Activate activates this entry
func (e *Entry) Activate() {
	e.IsActive = true
	e.UpdatedAt = time.Now()
}

// Deactivate deactivates this entry; inactive entries never satisfy a lookup
func (e *Entry) Deactivate() {
	e.IsActive = false
	e.UpdatedAt = time.Now()
}

// ---------------------------------------------------------------------------
// Default Value Object
// ---------------------------------------------------------------------------

// Default is the per-category fallback pair used when no entry matches.
type Default struct {
	// Category identifies which mapping table this default belongs to
	Category Category
	// SourceValue is the fallback source-side value
	SourceValue string
	// TargetValue is the fallback ERP-side value
	TargetValue string
	// UpdatedAt is when this default was last changed
	UpdatedAt time.Time
}

// Validate validates the default
func (d *Default) Validate() error {
	if !d.Category.IsValid() {
		return ErrInvalidCategory
	}
	if d.TargetValue == "" {
		return ErrEmptyTargetID
	}
	return nil
}
