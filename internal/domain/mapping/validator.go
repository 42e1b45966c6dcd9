package mapping

import (
	"fmt"
	"time"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
)

// Error reports one unmapped source value on one order. Errors are derived
// on every validation pass and never persisted; they exist only in memory
// and response payloads.
type Error struct {
	// OrderID and OrderName attribute the error to a storefront order
	OrderID   string
	OrderName string
	// Category is the mapping table the lookup missed in
	Category Category
	// SourceValue is the exact code that failed to resolve
	SourceValue string
	// Message is the operator-facing description
	Message string
	// DetectedAt is when this validation pass found the gap
	DetectedAt time.Time
}

// ValidateOrder checks an order's payment and shipment codes against the
// snapshot and returns a mapping error for each code with no active entry.
// A payment error, if any, precedes a shipment error.
//
// Absent data is not a gap: an order with no payment gateway names or no
// shipping lines produces no error for that category. Malformed raw fields
// were already dropped (and logged) at the ingestion boundary, so by the
// time an order reaches the validator its fields are canonical slices.
func ValidateOrder(o *order.Order, snap *Snapshot) []Error {
	var errs []Error

	if code := o.PaymentMethod(); code != "" {
		if _, ok := Resolve(snap, CategoryPayment, code); !ok {
			errs = append(errs, Error{
				OrderID:     o.StorefrontID(),
				OrderName:   o.Name,
				Category:    CategoryPayment,
				SourceValue: code,
				Message:     fmt.Sprintf("Payment method %q is not mapped to a target payment option", code),
				DetectedAt:  time.Now(),
			})
		}
	}

	if code := o.ShipmentMethod(); code != "" {
		if _, ok := Resolve(snap, CategoryShipment, code); !ok {
			errs = append(errs, Error{
				OrderID:     o.StorefrontID(),
				OrderName:   o.Name,
				Category:    CategoryShipment,
				SourceValue: code,
				Message:     fmt.Sprintf("Shipment method %q is not mapped to a target shipment option", code),
				DetectedAt:  time.Now(),
			})
		}
	}

	return errs
}
