package mapping

import (
	"time"

	"github.com/buffmasterbran/pirani-connector/internal/domain/mapping"
)

// ---------------------------------------------------------------------------
// Mapping DTOs
// ---------------------------------------------------------------------------

// EntryResponse represents a mapping entry in API responses
type EntryResponse struct {
	ID               string           `json:"id"`
	Category         mapping.Category `json:"category"`
	SourceCode       string           `json:"source_code,omitempty"`
	SourceFixedValue string           `json:"source_fixed_value,omitempty"`
	TargetID         string           `json:"target_id"`
	Kind             mapping.Kind     `json:"kind,omitempty"`
	AccountScope     string           `json:"account_scope"`
	IsActive         bool             `json:"is_active"`
	CustomFieldID    string           `json:"custom_field_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToEntryResponse converts a domain entry to its response shape
func ToEntryResponse(e *mapping.Entry) EntryResponse {
	return EntryResponse{
		ID:               e.ID.String(),
		Category:         e.Category,
		SourceCode:       e.SourceCode,
		SourceFixedValue: e.SourceFixedValue,
		TargetID:         e.TargetID,
		Kind:             e.Kind,
		AccountScope:     string(e.AccountScope),
		IsActive:         e.IsActive,
		CustomFieldID:    e.CustomFieldID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// DefaultResponse represents a category default in API responses
type DefaultResponse struct {
	Category    mapping.Category `json:"category"`
	SourceValue string           `json:"source_value,omitempty"`
	TargetValue string           `json:"target_value"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToDefaultResponse converts a domain default to its response shape
func ToDefaultResponse(d *mapping.Default) DefaultResponse {
	return DefaultResponse{
		Category:    d.Category,
		SourceValue: d.SourceValue,
		TargetValue: d.TargetValue,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Validation report DTOs
// ---------------------------------------------------------------------------

// MappingErrorResponse represents one mapping error in API responses
type MappingErrorResponse struct {
	OrderID     string           `json:"order_id"`
	OrderName   string           `json:"order_name"`
	Category    mapping.Category `json:"category"`
	SourceValue string           `json:"source_value"`
	Message     string           `json:"message"`
	DetectedAt  time.Time        `json:"detected_at"`
}

// ReportResponse represents an aggregated validation run
type ReportResponse struct {
	Errors                []MappingErrorResponse `json:"errors"`
	UnmappedPaymentCodes  []string               `json:"unmapped_payment_codes"`
	UnmappedShipmentCodes []string               `json:"unmapped_shipment_codes"`
}

// ToReportResponse converts a domain report to its response shape
func ToReportResponse(r *mapping.Report) ReportResponse {
	resp := ReportResponse{
		Errors:                make([]MappingErrorResponse, 0, len(r.Errors)),
		UnmappedPaymentCodes:  r.UnmappedPaymentCodes,
		UnmappedShipmentCodes: r.UnmappedShipmentCodes,
	}
	for _, e := range r.Errors {
		resp.Errors = append(resp.Errors, MappingErrorResponse{
			OrderID:     e.OrderID,
			OrderName:   e.OrderName,
			Category:    e.Category,
			SourceValue: e.SourceValue,
			Message:     e.Message,
			DetectedAt:  e.DetectedAt,
		})
	}
	return resp
}
