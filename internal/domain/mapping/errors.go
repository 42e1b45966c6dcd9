package mapping

import "errors"

var (
	// Entry errors
	ErrInvalidCategory     = errors.New("mapping: invalid category")
	ErrInvalidKind         = errors.New("mapping: invalid kind for category")
	ErrEmptySourceCode     = errors.New("mapping: source code must not be empty")
	ErrEmptyTargetID       = errors.New("mapping: target ID must not be empty")
	ErrNoSource            = errors.New("mapping: entry needs a source code or a fixed value")
	ErrMissingCustomField  = errors.New("mapping: custom entries need a custom field ID")
	ErrEntryNotFound       = errors.New("mapping: entry not found")
	ErrDuplicateSourceCode = errors.New("mapping: an active entry for this source code already exists")

	// Default errors
	ErrDefaultNotFound = errors.New("mapping: no default configured for category")
)
