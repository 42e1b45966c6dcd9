package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
)

// OrderModel is the persistence model for imported storefront orders. The
// primary key is the storefront's own order ID, not a generated one.
// Gateway names and shipping lines are stored as canonical JSON documents;
// any raw-field leniency was already applied at the ingestion boundary.
type OrderModel struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement:false"`
	Name                string          `gorm:"type:varchar(50);not null;index:idx_order_name"`
	FinancialStatus     string          `gorm:"type:varchar(30)"`
	FulfillmentStatus   string          `gorm:"type:varchar(30)"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency            string          `gorm:"type:varchar(3)"`
	PaymentGatewayNames string          `gorm:"type:text;column:payment_gateway_names"`
	ShippingLines       string          `gorm:"type:text;column:shipping_lines"`
	PlacedAt            time.Time       `gorm:"index"`
	ERPDepositNumber    string          `gorm:"type:varchar(50);column:erp_deposit_number"`
	ImportedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		ID:                m.ID,
		Name:              m.Name,
		FinancialStatus:   m.FinancialStatus,
		FulfillmentStatus: m.FulfillmentStatus,
		TotalPrice:        m.TotalPrice,
		Currency:          m.Currency,
		PlacedAt:          m.PlacedAt,
		ERPDepositNumber:  m.ERPDepositNumber,
		ImportedAt:        m.ImportedAt,
	}

	if m.PaymentGatewayNames != "" {
		var gateways []string
		if err := json.Unmarshal([]byte(m.PaymentGatewayNames), &gateways); err == nil {
			o.PaymentGatewayNames = gateways
		}
	}
	if m.ShippingLines != "" {
		var lines []order.ShippingLine
		if err := json.Unmarshal([]byte(m.ShippingLines), &lines); err == nil {
			o.ShippingLines = lines
		}
	}

	return o
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.ID = o.ID
	m.Name = o.Name
	m.FinancialStatus = o.FinancialStatus
	m.FulfillmentStatus = o.FulfillmentStatus
	m.TotalPrice = o.TotalPrice
	m.Currency = o.Currency
	m.PlacedAt = o.PlacedAt
	m.ERPDepositNumber = o.ERPDepositNumber
	m.ImportedAt = o.ImportedAt

	if jsonBytes, err := json.Marshal(o.PaymentGatewayNames); err == nil {
		m.PaymentGatewayNames = string(jsonBytes)
	} else {
		m.PaymentGatewayNames = "[]"
	}
	if jsonBytes, err := json.Marshal(o.ShippingLines); err == nil {
		m.ShippingLines = string(jsonBytes)
	} else {
		m.ShippingLines = "[]"
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
