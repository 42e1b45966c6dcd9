package order

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound      = errors.New("order: order not found")
	ErrEmptyDepositNumber = errors.New("order: deposit number must not be empty")
)

// Repository defines the interface for the local order store
type Repository interface {
	// FindByID finds a stored order by its storefront ID
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindByName finds a stored order by its exact storefront name
	FindByName(ctx context.Context, name string) (*Order, error)

	// List returns stored orders, newest placement first
	List(ctx context.Context) ([]Order, error)

	// Save inserts an order, or leaves an existing row untouched.
	// Returns true if the order was newly inserted.
	Save(ctx context.Context, o *Order) (bool, error)

	// SetERPDepositNumber records the ERP deposit an order landed on
	SetERPDepositNumber(ctx context.Context, id int64, depositNumber string) error

	// Delete removes a stored order
	Delete(ctx context.Context, id int64) error
}
