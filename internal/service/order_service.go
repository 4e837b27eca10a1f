package service

import (
	"context"

	"github.com/pearview-systems/pos-checkout-service/internal/config"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/metrics"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
	"github.com/pearview-systems/pos-checkout-service/internal/repository"
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order, itemCount int) error
	PublishOrderUpdated(ctx context.Context, order *models.Order) error
	PublishOrderDeleted(ctx context.Context, orderID int64) error
}

// OrderService handles order business logic on the backend side.
type OrderService struct {
	repo      repository.OrderRepository
	cache     repository.OrderCache
	publisher OrderEventPublisher
	config    *config.Config
	logger    *logging.LoggerV2
}

// NewOrderService creates a new order service.
func NewOrderService(
	repo repository.OrderRepository,
	cache repository.OrderCache,
	publisher OrderEventPublisher,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		config:    cfg,
		logger:    logging.NewLoggerV2("order-service"),
	}
}

// CreateOrder persists an order header and returns it with the generated id.
func (s *OrderService) CreateOrder(ctx context.Context, header *models.OrderHeader) (*models.Order, error) {
	s.logger.Info("Creating order", logging.Fields{
		"employee_id": header.EmployeeID,
		"total":       header.Total,
	})

	if err := ValidateOrderHeader(header); err != nil {
		return nil, err
	}

	order, err := s.repo.CreateOrder(ctx, header)
	if err != nil {
		s.logger.Error("Failed to create order", logging.Fields{
			"employee_id": header.EmployeeID,
			"error":       err.Error(),
		})
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	if s.config.Features.EnableOrderCaching {
		if err := s.cache.Set(ctx, order); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to cache order", logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
		s.cache.InvalidateRecent(ctx)
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderCreated(ctx, order, 0); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish order created event", logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}

	return order, nil
}

// CreateLineItem records one line item against an existing order.
func (s *OrderService) CreateLineItem(ctx context.Context, item *models.LineItem) (*models.LineItemRecord, error) {
	if err := ValidateLineItem(item); err != nil {
		return nil, err
	}

	// Line items arrive as an unordered fan-out after the header write, so a
	// missing order here means the caller never created one, not a race.
	if _, err := s.repo.GetByID(ctx, item.OrderID); err != nil {
		return nil, err
	}

	record, err := s.repo.CreateLineItem(ctx, item)
	if err != nil {
		s.logger.Error("Failed to create line item", logging.Fields{
			"order_id": item.OrderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	metrics.LineItemsCreated.Inc()
	return record, nil
}

// GetOrder retrieves an order header by ID.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if s.config.Features.EnableOrderCaching {
		if order, err := s.cache.Get(ctx, id); err == nil && order != nil {
			return order, nil
		}
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderCaching {
		s.cache.Set(ctx, order)
	}

	return order, nil
}

// GetOrderItems retrieves the line items recorded for an order.
func (s *OrderService) GetOrderItems(ctx context.Context, orderID int64) ([]*models.LineItemRecord, error) {
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListLineItems(ctx, orderID)
}

// ListOrders retrieves order headers matching the filter.
func (s *OrderService) ListOrders(ctx context.Context, filter *repository.OrderListFilter) ([]*models.Order, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	if err := ValidateOrderListFilter(filter); err != nil {
		return nil, 0, err
	}

	firstPage := filter.Offset == 0 && filter.EmployeeID == nil

	if s.config.Features.EnableOrderCaching && firstPage {
		if orders, err := s.cache.GetRecent(ctx); err == nil && orders != nil {
			return orders, len(orders), nil
		}
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if s.config.Features.EnableOrderCaching && firstPage {
		s.cache.SetRecent(ctx, orders)
	}

	return orders, total, nil
}

// UpdateOrder applies a partial header update.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	s.logger.Info("Updating order", logging.Fields{"order_id": id})

	if err := ValidateUpdateOrderRequest(req); err != nil {
		return nil, err
	}

	order, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderCaching {
		s.cache.Delete(ctx, id)
		s.cache.InvalidateRecent(ctx)
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderUpdated(ctx, order); err != nil {
			s.logger.Error("Failed to publish order updated event", logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}

	return order, nil
}

// DeleteOrder removes an order header and its line items.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	s.logger.Info("Deleting order", logging.Fields{"order_id": id})

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.config.Features.EnableOrderCaching {
		s.cache.Delete(ctx, id)
		s.cache.InvalidateRecent(ctx)
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderDeleted(ctx, id); err != nil {
			s.logger.Error("Failed to publish order deleted event", logging.Fields{
				"order_id": id,
				"error":    err.Error(),
			})
		}
	}

	return nil
}
