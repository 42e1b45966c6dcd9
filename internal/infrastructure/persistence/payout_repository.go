package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/persistence/models"
)

// GormPayoutRepository implements payout.Repository and
// payout.SettingRepository using GORM
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewGormPayoutRepository creates a new GormPayoutRepository
func NewGormPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// ---------------------------------------------------------------------------
// payout.Repository implementation
// ---------------------------------------------------------------------------

// FindByID finds a stored payout with its transactions
func (r *GormPayoutRepository) FindByID(ctx context.Context, id int64) (*payout.Payout, error) {
	var model models.PayoutModel
	if err := r.db.WithContext(ctx).
		Preload("Transactions").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payout.ErrPayoutNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns stored payouts with transactions, newest date first
func (r *GormPayoutRepository) List(ctx context.Context) ([]payout.Payout, error) {
	var payoutModels []models.PayoutModel
	if err := r.db.WithContext(ctx).
		Preload("Transactions").
		Order("date DESC").
		Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]payout.Payout, len(payoutModels))
	for i := range payoutModels {
		payouts[i] = *payoutModels[i].ToDomain()
	}
	return payouts, nil
}

// Save inserts a payout and its transactions in one transaction, or leaves
// an existing payout untouched. Returns true if newly inserted.
func (r *GormPayoutRepository) Save(ctx context.Context, p *payout.Payout) (bool, error) {
	model := models.PayoutModelFromDomain(p)

	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactions := model.Transactions
		model.Transactions = nil

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		inserted = true

		if len(transactions) > 0 {
			if err := tx.Create(&transactions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// ---------------------------------------------------------------------------
// payout.SettingRepository implementation
// ---------------------------------------------------------------------------

// FindSettingByID finds a setting by its ID
func (r *GormPayoutRepository) FindSettingByID(ctx context.Context, id uuid.UUID) (*payout.Setting, error) {
	var model models.PayoutSettingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payout.ErrSettingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListSettings returns every setting, ordered by name
func (r *GormPayoutRepository) ListSettings(ctx context.Context) ([]payout.Setting, error) {
	var settingModels []models.PayoutSettingModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&settingModels).Error; err != nil {
		return nil, err
	}

	settings := make([]payout.Setting, len(settingModels))
	for i := range settingModels {
		settings[i] = *settingModels[i].ToDomain()
	}
	return settings, nil
}

// CreateSetting inserts a new setting
func (r *GormPayoutRepository) CreateSetting(ctx context.Context, s *payout.Setting) error {
	model := models.PayoutSettingModelFromDomain(s)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateSetting saves changes to an existing setting
func (r *GormPayoutRepository) UpdateSetting(ctx context.Context, s *payout.Setting) error {
	model := models.PayoutSettingModelFromDomain(s)
	result := r.db.WithContext(ctx).Model(&models.PayoutSettingModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return payout.ErrSettingNotFound
	}
	return nil
}

// Ensure GormPayoutRepository implements both payout repository interfaces
var (
	_ payout.Repository        = (*GormPayoutRepository)(nil)
	_ payout.SettingRepository = (*GormPayoutRepository)(nil)
)
