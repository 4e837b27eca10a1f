package service

import (
	"strconv"
	"strings"

	"github.com/pearview-systems/pos-checkout-service/internal/errors"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
	"github.com/pearview-systems/pos-checkout-service/internal/repository"
)

// ValidateOrderHeader validates an order creation request.
func ValidateOrderHeader(header *models.OrderHeader) error {
	if header.Time.IsZero() {
		return errors.NewValidationError("time", "order time is required")
	}

	if err := validateTotal(header.Total); err != nil {
		return err
	}

	if header.EmployeeID <= 0 {
		return errors.NewValidationError("employee_id", "employee ID is required")
	}

	return nil
}

func validateTotal(total string) error {
	if total == "" {
		return errors.NewValidationError("total", "total is required")
	}

	v, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return errors.NewValidationError("total", "total must be a decimal string")
	}

	if v < 0 {
		return errors.NewValidationError("total", "total cannot be negative")
	}

	// Two fractional digits, per the wire contract.
	if i := strings.IndexByte(total, '.'); i < 0 || len(total)-i-1 != 2 {
		return errors.NewValidationError("total", "total must have exactly two decimal places")
	}

	return nil
}

// ValidateLineItem validates a line item creation request.
func ValidateLineItem(item *models.LineItem) error {
	if item.OrderID <= 0 {
		return errors.NewValidationError("order_id", "order ID is required")
	}

	if item.Quantity < 1 {
		return errors.NewValidationError("quantity", "quantity must be at least 1")
	}

	if item.ContainerID != nil && *item.ContainerID <= 0 {
		return errors.NewValidationError("container_id", "container ID must be positive or null")
	}

	return nil
}

// ValidateUpdateOrderRequest validates a partial header update.
func ValidateUpdateOrderRequest(req *models.UpdateOrderRequest) error {
	if req.Time == nil && req.Total == nil && req.EmployeeID == nil {
		return errors.NewValidationError("body", "at least one field must be provided")
	}

	if req.Total != nil {
		if err := validateTotal(*req.Total); err != nil {
			return err
		}
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return errors.NewValidationError("employee_id", "employee ID must be positive")
	}

	return nil
}

// ValidateOrderListFilter validates a list filter, capping the page size.
func ValidateOrderListFilter(filter *repository.OrderListFilter) error {
	if filter.Limit < 0 {
		return errors.NewValidationError("limit", "limit cannot be negative")
	}

	if filter.Offset < 0 {
		return errors.NewValidationError("offset", "offset cannot be negative")
	}

	if filter.Limit > 100 {
		filter.Limit = 100
	}

	if filter.EmployeeID != nil && *filter.EmployeeID <= 0 {
		return errors.NewValidationError("employee_id", "employee ID must be positive")
	}

	return nil
}
