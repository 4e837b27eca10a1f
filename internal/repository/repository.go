package repository

import (
	"context"

	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

// OrderListFilter narrows and pages an order listing.
type OrderListFilter struct {
	EmployeeID *int
	Limit      int
	Offset     int
}

// OrderRepository defines the persistence operations behind the orders API.
type OrderRepository interface {
	CreateOrder(ctx context.Context, header *models.OrderHeader) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, filter *OrderListFilter) ([]*models.Order, int, error)
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id int64) error

	CreateLineItem(ctx context.Context, item *models.LineItem) (*models.LineItemRecord, error)
	ListLineItems(ctx context.Context, orderID int64) ([]*models.LineItemRecord, error)
}

// OrderCache defines caching operations for orders.
type OrderCache interface {
	Get(ctx context.Context, id int64) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id int64) error
	GetRecent(ctx context.Context) ([]*models.Order, error)
	SetRecent(ctx context.Context, orders []*models.Order) error
	InvalidateRecent(ctx context.Context) error
}
