package mapping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buffmasterbran/pirani-connector/internal/domain/mapping"
	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
)

// MappingService manages the five mapping tables and runs validation over
// the stored orders. Gap resolution goes through AddMapping; after any
// write the next ValidationReport call sees a fresh snapshot, so a newly
// mapped code disappears from the unmapped sets without reprocessing
// already-validated orders.
type MappingService struct {
	mappingRepo mapping.Repository
	orderRepo   order.Repository
	logger      *zap.Logger
}

// NewMappingService creates a new MappingService
func NewMappingService(mappingRepo mapping.Repository, orderRepo order.Repository, logger *zap.Logger) *MappingService {
	return &MappingService{
		mappingRepo: mappingRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// ---------------------------------------------------------------------------
// Entry CRUD
// ---------------------------------------------------------------------------

// ListEntries lists every entry of a category, active or not
func (s *MappingService) ListEntries(ctx context.Context, category mapping.Category) ([]mapping.Entry, error) {
	return s.mappingRepo.List(ctx, category)
}

// GetEntry retrieves an entry by ID
func (s *MappingService) GetEntry(ctx context.Context, id uuid.UUID) (*mapping.Entry, error) {
	return s.mappingRepo.FindByID(ctx, id)
}

// AddMapping is the gap-resolution workflow: an operator supplies the
// unresolved source code and the ERP target for a category. Empty inputs
// are rejected before any mutation. Duplicate active source codes are
// rejected at write time so lookup never depends on entry precedence.
// If the persistence write fails nothing is mutated and the gap stays
// reported.
func (s *MappingService) AddMapping(ctx context.Context, category mapping.Category, sourceCode, targetID string) (*mapping.Entry, error) {
	entry, err := mapping.NewEntry(category, sourceCode, targetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.mappingRepo.ActiveSourceCodeExists(ctx, category, sourceCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, mapping.ErrDuplicateSourceCode
	}

	if err := s.mappingRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("mapping gap resolved",
		zap.String("category", category.String()),
		zap.String("source_code", sourceCode),
		zap.String("target_id", targetID),
	)
	return entry, nil
}

// CreateFixedEntry creates a fixed-value entry for a field category
func (s *MappingService) CreateFixedEntry(ctx context.Context, category mapping.Category, fixedValue, targetID string) (*mapping.Entry, error) {
	entry, err := mapping.NewFixedEntry(category, fixedValue, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.mappingRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntryInput carries the fields an operator may change on an entry.
// Nil pointers leave the field untouched.
type UpdateEntryInput struct {
	TargetID      *string
	IsActive      *bool
	Kind          *mapping.Kind
	CustomFieldID *string
}

// UpdateEntry applies a partial update to an entry
func (s *MappingService) UpdateEntry(ctx context.Context, id uuid.UUID, input UpdateEntryInput) (*mapping.Entry, error) {
	entry, err := s.mappingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TargetID != nil {
		if err := entry.Retarget(*input.TargetID); err != nil {
			return nil, err
		}
	}
	if input.Kind != nil {
		entry.Kind = *input.Kind
	}
	if input.CustomFieldID != nil {
		entry.CustomFieldID = *input.CustomFieldID
	}
	if input.IsActive != nil {
		if *input.IsActive {
			entry.Activate()
		} else {
			entry.Deactivate()
		}
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.mappingRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes an entry. Nothing else owns entries, so no cascade.
func (s *MappingService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mappingRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.mappingRepo.Delete(ctx, id)
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

// GetDefault returns the fallback pair for a category
func (s *MappingService) GetDefault(ctx context.Context, category mapping.Category) (*mapping.Default, error) {
	return s.mappingRepo.GetDefault(ctx, category)
}

// SetDefault creates or replaces the fallback pair for a category
func (s *MappingService) SetDefault(ctx context.Context, def *mapping.Default) error {
	if err := def.Validate(); err != nil {
		return err
	}
	return s.mappingRepo.SetDefault(ctx, def)
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// ValidationReport validates every stored order against a fresh mapping
// snapshot. The snapshot is taken once per call, so the orders and the
// mapping tables reflect the same point in time; concurrent mapping writes
// are picked up by the next call, never mid-pass.
func (s *MappingService) ValidationReport(ctx context.Context) (*mapping.Report, error) {
	snap, err := mapping.TakeSnapshot(ctx, s.mappingRepo)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	report := mapping.ValidateOrders(orders, snap)
	if report.HasErrors() {
		s.logger.Info("mapping validation found gaps",
			zap.Int("orders", len(orders)),
			zap.Int("errors", len(report.Errors)),
			zap.Strings("unmapped_payment_codes", report.UnmappedPaymentCodes),
			zap.Strings("unmapped_shipment_codes", report.UnmappedShipmentCodes),
		)
	}
	return report, nil
}
