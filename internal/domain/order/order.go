// Package order contains the imported storefront order records. Orders are
// externally sourced and read-only to the mapping core; they are parsed into
// this canonical shape once, at the ingestion boundary.
package order

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ShippingLine is one shipping charge on an order. The first line's Code is
// what the shipment mapping resolves.
type ShippingLine struct {
	// Code is the storefront shipping method code, e.g. "free_shipping"
	Code string `json:"code"`
	// Title is the storefront display title
	Title string `json:"title"`
	// Price is the charge for this line
	Price decimal.Decimal `json:"price"`
}

// Order is the canonical shape of an imported storefront order. The raw
// storefront payload delivers payment_gateway_names and shipping_lines
// either as native arrays or as JSON-encoded strings; the ingestion boundary
// decodes them once so nothing downstream ever detects-and-parses JSON.
type Order struct {
	// ID is the storefront order ID
	ID int64
	// Name is the storefront order name, e.g. "#1001"
	Name string
	// FinancialStatus is the storefront payment status
	FinancialStatus string
	// FulfillmentStatus is the storefront fulfillment status, if any
	FulfillmentStatus string
	// TotalPrice is the order total
	TotalPrice decimal.Decimal
	// Currency is the ISO currency code
	Currency string
	// PaymentGatewayNames lists the gateways that took payment; the first
	// entry is the candidate payment code for mapping resolution
	PaymentGatewayNames []string
	// ShippingLines lists the shipping charges; the first line's code is
	// the candidate shipment code for mapping resolution
	ShippingLines []ShippingLine
	// PlacedAt is when the order was created on the storefront
	PlacedAt time.Time
	// ERPDepositNumber is set once the order appears on an ERP deposit
	ERPDepositNumber string
	// ImportedAt is when this record entered the local store
	ImportedAt time.Time
}

// StorefrontID returns the order ID as a string for error attribution
func (o *Order) StorefrontID() string {
	return strconv.FormatInt(o.ID, 10)
}

// PaymentMethod returns the candidate payment code, or "" if the order
// carries no payment gateway names
func (o *Order) PaymentMethod() string {
	if len(o.PaymentGatewayNames) == 0 {
		return ""
	}
	return o.PaymentGatewayNames[0]
}

// ShipmentMethod returns the candidate shipment code, or "" if the order
// carries no shipping lines or the first line has no code
func (o *Order) ShipmentMethod() string {
	if len(o.ShippingLines) == 0 {
		return ""
	}
	return o.ShippingLines[0].Code
}
