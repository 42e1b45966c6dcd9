package mapping

import (
	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
)

// Report is the result of validating a batch of orders against one
// snapshot: every mapping error in traversal order plus the distinct
// unmapped codes per validated category. It is what the dashboard renders
// per-order badges and "add mapping" affordances from.
type Report struct {
	// Errors holds every mapping error, in order-traversal order
	Errors []Error
	// UnmappedPaymentCodes holds the distinct unresolved payment codes,
	// first occurrence first
	UnmappedPaymentCodes []string
	// UnmappedShipmentCodes holds the distinct unresolved shipment codes,
	// first occurrence first
	UnmappedShipmentCodes []string
}

// HasErrors returns true if any order failed validation
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// ValidateOrders runs the validator over every order and aggregates the
// results. It is pure over its inputs: calling it twice with the same
// orders and snapshot yields identical reports, and it holds no cache.
// Whenever the order set or the mapping tables change, the caller takes a
// fresh snapshot and re-runs it wholesale.
func ValidateOrders(orders []order.Order, snap *Snapshot) *Report {
	report := &Report{
		Errors:                make([]Error, 0),
		UnmappedPaymentCodes:  make([]string, 0),
		UnmappedShipmentCodes: make([]string, 0),
	}

	seenPayment := make(map[string]bool)
	seenShipment := make(map[string]bool)

	for i := range orders {
		for _, e := range ValidateOrder(&orders[i], snap) {
			report.Errors = append(report.Errors, e)
			switch e.Category {
			case CategoryPayment:
				if !seenPayment[e.SourceValue] {
					seenPayment[e.SourceValue] = true
					report.UnmappedPaymentCodes = append(report.UnmappedPaymentCodes, e.SourceValue)
				}
			case CategoryShipment:
				if !seenShipment[e.SourceValue] {
					seenShipment[e.SourceValue] = true
					report.UnmappedShipmentCodes = append(report.UnmappedShipmentCodes, e.SourceValue)
				}
			}
		}
	}

	return report
}
