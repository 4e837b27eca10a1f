package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/pearview-systems/pos-checkout-service/internal/errors"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

// Ensure PostgresOrderRepository implements OrderRepository
var _ OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *logging.LoggerV2
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *logging.LoggerV2) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger,
	}
}

// RunMigrations applies any pending schema migrations from the given
// directory.
func (r *PostgresOrderRepository) RunMigrations(path string) error {
	driver, err := migratepg.WithInstance(r.db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// CreateOrder inserts an order header and returns the stored row with its
// generated identifier.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, header *models.OrderHeader) (*models.Order, error) {
	r.logger.Debug("Creating order header", logging.Fields{
		"employee_id": header.EmployeeID,
		"total":       header.Total,
	})

	query := `
		INSERT INTO orders (order_time, total, employee_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	order := &models.Order{
		Time:       header.Time,
		Total:      header.Total,
		EmployeeID: header.EmployeeID,
	}

	err := r.db.QueryRowContext(ctx, query,
		header.Time,
		header.Total,
		header.EmployeeID,
		time.Now(),
	).Scan(&order.ID, &order.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to create order", logging.Fields{
			"employee_id": header.EmployeeID,
			"error":       err.Error(),
		})
		return nil, err
	}

	r.logger.Info("Order created", logging.Fields{
		"order_id": order.ID,
		"total":    order.Total,
	})

	return order, nil
}

// GetByID retrieves an order header by its identifier.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT id, order_time, total, employee_id, created_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.Time,
		&order.Total,
		&order.EmployeeID,
		&order.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch order", logging.Fields{
			"order_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	return &order, nil
}

// List retrieves order headers matching the filter, newest first, plus the
// total matching count.
func (r *PostgresOrderRepository) List(ctx context.Context, filter *OrderListFilter) ([]*models.Order, int, error) {
	baseQuery := " FROM orders WHERE 1=1"
	args := make([]interface{}, 0)

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		baseQuery += " AND employee_id = $" + strconv.Itoa(len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*)" + baseQuery
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitArg := strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetArg := strconv.Itoa(len(args))

	selectQuery := "SELECT id, order_time, total, employee_id, created_at" +
		baseQuery + " ORDER BY order_time DESC LIMIT $" + limitArg + " OFFSET $" + offsetArg

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID,
			&order.Time,
			&order.Total,
			&order.EmployeeID,
			&order.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Update applies a partial header update and returns the stored row.
func (r *PostgresOrderRepository) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	r.logger.Debug("Updating order", logging.Fields{"order_id": id})

	query := `
		UPDATE orders
		SET order_time = COALESCE($2, order_time),
		    total = COALESCE($3, total),
		    employee_id = COALESCE($4, employee_id)
		WHERE id = $1
		RETURNING id
	`

	var returnedID int64
	err := r.db.QueryRowContext(ctx, query, id, req.Time, req.Total, req.EmployeeID).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update order", logging.Fields{
			"order_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes an order header and any line items recorded against it.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return errors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info("Order deleted", logging.Fields{"order_id": id})
	return nil
}

// CreateLineItem inserts one line item for an existing order.
func (r *PostgresOrderRepository) CreateLineItem(ctx context.Context, item *models.LineItem) (*models.LineItemRecord, error) {
	query := `
		INSERT INTO order_items (order_id, quantity, container_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	record := &models.LineItemRecord{
		OrderID:     item.OrderID,
		Quantity:    item.Quantity,
		ContainerID: item.ContainerID,
	}

	err := r.db.QueryRowContext(ctx, query,
		item.OrderID,
		item.Quantity,
		item.ContainerID,
	).Scan(&record.ID)

	if err != nil {
		r.logger.Error("Failed to create line item", logging.Fields{
			"order_id": item.OrderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	return record, nil
}

// ListLineItems retrieves the line items recorded for an order.
func (r *PostgresOrderRepository) ListLineItems(ctx context.Context, orderID int64) ([]*models.LineItemRecord, error) {
	query := `
		SELECT id, order_id, quantity, container_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.LineItemRecord, 0)
	for rows.Next() {
		var item models.LineItemRecord
		var containerID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Quantity, &containerID); err != nil {
			return nil, err
		}
		if containerID.Valid {
			item.ContainerID = &containerID.Int64
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
