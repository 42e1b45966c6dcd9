package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
)

// PayoutModel is the persistence model for imported payouts. The primary key
// is the storefront's payout ID.
type PayoutModel struct {
	ID           int64                    `gorm:"primaryKey;autoIncrement:false"`
	Status       string                   `gorm:"type:varchar(30)"`
	Date         time.Time                `gorm:"index"`
	Amount       decimal.Decimal          `gorm:"type:numeric(12,2)"`
	Currency     string                   `gorm:"type:varchar(3)"`
	ImportedAt   time.Time                `gorm:"not null"`
	Transactions []PayoutTransactionModel `gorm:"foreignKey:PayoutID;references:ID"`
}

// TableName returns the table name for GORM
func (PayoutModel) TableName() string {
	return "payouts"
}

// ToDomain converts the persistence model to a domain Payout.
func (m *PayoutModel) ToDomain() *payout.Payout {
	p := &payout.Payout{
		ID:           m.ID,
		Status:       m.Status,
		Date:         m.Date,
		Amount:       m.Amount,
		Currency:     m.Currency,
		ImportedAt:   m.ImportedAt,
		Transactions: make([]payout.Transaction, 0, len(m.Transactions)),
	}
	for i := range m.Transactions {
		p.Transactions = append(p.Transactions, *m.Transactions[i].ToDomain())
	}
	return p
}

// FromDomain populates the persistence model from a domain Payout.
func (m *PayoutModel) FromDomain(p *payout.Payout) {
	m.ID = p.ID
	m.Status = p.Status
	m.Date = p.Date
	m.Amount = p.Amount
	m.Currency = p.Currency
	m.ImportedAt = p.ImportedAt

	m.Transactions = make([]PayoutTransactionModel, 0, len(p.Transactions))
	for i := range p.Transactions {
		var tm PayoutTransactionModel
		tm.FromDomain(&p.Transactions[i])
		m.Transactions = append(m.Transactions, tm)
	}
}

// PayoutModelFromDomain creates a new persistence model from a domain Payout.
func PayoutModelFromDomain(p *payout.Payout) *PayoutModel {
	m := &PayoutModel{}
	m.FromDomain(p)
	return m
}

// PayoutTransactionModel is the persistence model for payout balance
// transactions. Only complete transactions reach this table; placeholder
// rows are filtered at import.
type PayoutTransactionModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	PayoutID      int64           `gorm:"not null;index:idx_payout_transaction_payout"`
	SourceOrderID int64           `gorm:"not null;index:idx_payout_transaction_order"`
	Type          string          `gorm:"type:varchar(30)"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Fee           decimal.Decimal `gorm:"type:numeric(12,2)"`
	Net           decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency      string          `gorm:"type:varchar(3)"`
	ProcessedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayoutTransactionModel) TableName() string {
	return "payout_transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *PayoutTransactionModel) ToDomain() *payout.Transaction {
	return &payout.Transaction{
		ID:            m.ID,
		PayoutID:      m.PayoutID,
		SourceOrderID: m.SourceOrderID,
		Type:          m.Type,
		Amount:        m.Amount,
		Fee:           m.Fee,
		Net:           m.Net,
		Currency:      m.Currency,
		ProcessedAt:   m.ProcessedAt,
	}
}

// FromDomain populates the persistence model from a domain Transaction.
func (m *PayoutTransactionModel) FromDomain(t *payout.Transaction) {
	m.ID = t.ID
	m.PayoutID = t.PayoutID
	m.SourceOrderID = t.SourceOrderID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Fee = t.Fee
	m.Net = t.Net
	m.Currency = t.Currency
	m.ProcessedAt = t.ProcessedAt
}

// PayoutSettingModel is the persistence model for payout settings.
type PayoutSettingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_payout_setting_name"`
	Description  string    `gorm:"type:text"`
	ERPAccountID string    `gorm:"type:varchar(50);column:erp_account_id"`
	Type         string    `gorm:"type:varchar(30);not null"`
	DefaultValue string    `gorm:"type:varchar(255)"`
	CurrentValue string    `gorm:"type:varchar(255)"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayoutSettingModel) TableName() string {
	return "payout_settings"
}

// ToDomain converts the persistence model to a domain Setting.
func (m *PayoutSettingModel) ToDomain() *payout.Setting {
	return &payout.Setting{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		ERPAccountID: m.ERPAccountID,
		Type:         m.Type,
		DefaultValue: m.DefaultValue,
		CurrentValue: m.CurrentValue,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Setting.
func (m *PayoutSettingModel) FromDomain(s *payout.Setting) {
	m.ID = s.ID
	m.Name = s.Name
	m.Description = s.Description
	m.ERPAccountID = s.ERPAccountID
	m.Type = s.Type
	m.DefaultValue = s.DefaultValue
	m.CurrentValue = s.CurrentValue
	m.IsActive = s.IsActive
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}

// PayoutSettingModelFromDomain creates a new persistence model from a domain Setting.
func PayoutSettingModelFromDomain(s *payout.Setting) *PayoutSettingModel {
	m := &PayoutSettingModel{}
	m.FromDomain(s)
	return m
}
