// Package payout contains imported storefront payout records and the payout
// settings that steer how the export pipeline books them against ERP
// accounts.
package payout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payout is one storefront payments payout, imported with its balance
// transactions.
type Payout struct {
	// ID is the storefront payout ID
	ID int64
	// Status is the storefront payout status, e.g. "paid"
	Status string
	// Date is the payout date
	Date time.Time
	// Amount is the payout total
	Amount decimal.Decimal
	// Currency is the ISO currency code
	Currency string
	// Transactions are the balance transactions settled by this payout
	Transactions []Transaction
	// ImportedAt is when this record entered the local store
	ImportedAt time.Time
}

// Transaction is one balance transaction within a payout. Transactions
// missing an ID, source order or processing date are dropped at import; the
// storefront occasionally reports placeholder rows.
type Transaction struct {
	// ID is the storefront transaction ID
	ID int64
	// PayoutID is the payout this transaction settled under
	PayoutID int64
	// SourceOrderID links back to the storefront order
	SourceOrderID int64
	// Type is the transaction type, e.g. "charge", "refund", "adjustment"
	Type string
	// Amount, Fee and Net are the gross amount, processing fee and net
	Amount decimal.Decimal
	Fee    decimal.Decimal
	Net    decimal.Decimal
	// Currency is the ISO currency code
	Currency string
	// ProcessedAt is when the storefront processed the transaction
	ProcessedAt time.Time
}

// IsComplete returns true if the transaction carries the fields the store
// requires. Incomplete rows are skipped, not errors.
func (t *Transaction) IsComplete() bool {
	return t.ID != 0 && t.SourceOrderID != 0 && !t.ProcessedAt.IsZero()
}

// Setting is one named payout setting: which ERP account a class of payout
// transactions books to.
type Setting struct {
	// ID is the unique identifier of this setting
	ID uuid.UUID
	// Name is the setting key, e.g. "payout_base_account"
	Name string
	// Description explains what the setting steers
	Description string
	// ERPAccountID is the ERP internal account ID
	ERPAccountID string
	// Type classifies the setting, e.g. "account"
	Type string
	// DefaultValue and CurrentValue allow reverting operator overrides
	DefaultValue string
	CurrentValue string
	// IsActive indicates if the setting is in use
	IsActive bool
	// CreatedAt is when this setting was created
	CreatedAt time.Time
	// UpdatedAt is when this setting was last updated
	UpdatedAt time.Time
}

// NewSetting creates a new active payout setting
func NewSetting(name, settingType, currentValue string) (*Setting, error) {
	if name == "" || settingType == "" || currentValue == "" {
		return nil, ErrInvalidSetting
	}
	now := time.Now()
	return &Setting{
		ID:           uuid.New(),
		Name:         name,
		Type:         settingType,
		DefaultValue: currentValue,
		CurrentValue: currentValue,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SetValue updates the current value of the setting
func (s *Setting) SetValue(value string) error {
	if value == "" {
		return ErrInvalidSetting
	}
	s.CurrentValue = value
	s.UpdatedAt = time.Now()
	return nil
}

// Revert resets the current value back to the default
func (s *Setting) Revert() {
	s.CurrentValue = s.DefaultValue
	s.UpdatedAt = time.Now()
}
