package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds a stored order by its storefront ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a stored order by its exact storefront name
func (r *GormOrderRepository) FindByName(ctx context.Context, name string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns stored orders, newest placement first
func (r *GormOrderRepository) List(ctx context.Context) ([]order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Order("placed_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// Save inserts an order, or leaves an existing row untouched so locally
// attached ERP references survive re-imports. Returns true if newly inserted.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) (bool, error) {
	model := models.OrderModelFromDomain(o)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetERPDepositNumber records the ERP deposit an order landed on
func (r *GormOrderRepository) SetERPDepositNumber(ctx context.Context, id int64, depositNumber string) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Update("erp_deposit_number", depositNumber)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Delete removes a stored order
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
