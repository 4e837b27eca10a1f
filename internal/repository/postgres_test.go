package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

func TestPostgresOrderRepository_CreateOrder(t *testing.T) {
	// TODO(TEAM-PLATFORM): Add integration tests with test database
	t.Skip("Integration test - requires database")

	ctx := context.Background()

	header := &models.OrderHeader{
		Time:       time.Now().UTC(),
		Total:      "11.34",
		EmployeeID: 99,
	}

	_ = ctx
	_ = header
}

func TestPostgresOrderRepository_GetByID(t *testing.T) {
	// TODO(TEAM-PLATFORM): Add integration tests
	t.Skip("Integration test - requires database")
}

func TestPostgresOrderRepository_Update(t *testing.T) {
	// TODO(TEAM-PLATFORM): Add integration tests
	t.Skip("Integration test - requires database")
}

func TestPostgresOrderRepository_Delete(t *testing.T) {
	// TODO(TEAM-PLATFORM): Add integration tests
	t.Skip("Integration test - requires database")
}

func TestPostgresOrderRepository_CreateLineItem(t *testing.T) {
	// TODO(TEAM-PLATFORM): Add integration tests
	t.Skip("Integration test - requires database")
}

func TestRedisOrderCache(t *testing.T) {
	// TODO(TEAM-PLATFORM): Add integration tests with miniredis
	t.Skip("Integration test - requires Redis")
}
