package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buffmasterbran/pirani-connector/internal/domain/mapping"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/persistence/models"
)

// GormMappingRepository implements mapping.Repository using GORM
type GormMappingRepository struct {
	db *gorm.DB
}

// NewGormMappingRepository creates a new GormMappingRepository
func NewGormMappingRepository(db *gorm.DB) *GormMappingRepository {
	return &GormMappingRepository{db: db}
}

// ---------------------------------------------------------------------------
// EntryReader implementation
// ---------------------------------------------------------------------------

// FindByID finds an entry by its ID
func (r *GormMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*mapping.Entry, error) {
	var model models.MappingEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mapping.ErrEntryNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns every entry of a category, oldest first
func (r *GormMappingRepository) List(ctx context.Context, category mapping.Category) ([]mapping.Entry, error) {
	var entryModels []models.MappingEntryModel
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// ListActive returns the active entries of a category, oldest first. The
// ordering fixes which entry wins when two active entries carry the same
// source code.
func (r *GormMappingRepository) ListActive(ctx context.Context, category mapping.Category) ([]mapping.Entry, error) {
	var entryModels []models.MappingEntryModel
	if err := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// ActiveSourceCodeExists checks whether an active entry already claims a source code
func (r *GormMappingRepository) ActiveSourceCodeExists(ctx context.Context, category mapping.Category, sourceCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MappingEntryModel{}).
		Where("category = ? AND source_code = ? AND is_active = ?", category, sourceCode, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------------
// EntryWriter implementation
// ---------------------------------------------------------------------------

// Create inserts a new entry
func (r *GormMappingRepository) Create(ctx context.Context, entry *mapping.Entry) error {
	model := models.MappingEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves changes to an existing entry
func (r *GormMappingRepository) Update(ctx context.Context, entry *mapping.Entry) error {
	model := models.MappingEntryModelFromDomain(entry)
	result := r.db.WithContext(ctx).Model(&models.MappingEntryModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return mapping.ErrEntryNotFound
	}
	return nil
}

// Delete removes an entry
func (r *GormMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MappingEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return mapping.ErrEntryNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// DefaultStore implementation
// ---------------------------------------------------------------------------

// GetDefault returns the default of a category
func (r *GormMappingRepository) GetDefault(ctx context.Context, category mapping.Category) (*mapping.Default, error) {
	var model models.MappingDefaultModel
	if err := r.db.WithContext(ctx).First(&model, "category = ?", category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mapping.ErrDefaultNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SetDefault inserts or replaces the default of a category
func (r *GormMappingRepository) SetDefault(ctx context.Context, def *mapping.Default) error {
	model := models.MappingDefaultModelFromDomain(def)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormMappingRepository implements mapping.Repository
var _ mapping.Repository = (*GormMappingRepository)(nil)

// ---------------------------------------------------------------------------
// Helper functions
// ---------------------------------------------------------------------------

func toDomainEntries(entryModels []models.MappingEntryModel) []mapping.Entry {
	entries := make([]mapping.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries
}
