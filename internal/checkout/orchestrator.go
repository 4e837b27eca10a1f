package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/pearview-systems/pos-checkout-service/internal/errors"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/metrics"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
	"github.com/pearview-systems/pos-checkout-service/internal/pricing"
)

// ErrSubmissionInProgress is returned when Submit is called while a previous
// attempt has not yet settled.
var ErrSubmissionInProgress = errors.New("a submission is already in progress")

// HeaderWriteError reports a failed order-header write. Nothing was recorded
// on the backend; the cart is preserved and the cashier may retry.
type HeaderWriteError struct {
	Err error
}

func (e *HeaderWriteError) Error() string {
	return fmt.Sprintf("could not create order: %v", e.Err)
}

func (e *HeaderWriteError) Unwrap() error { return e.Err }

// ItemWriteError reports that the order header was created but one or more
// line-item writes failed. There is no compensating action: the order now
// exists server-side with an incomplete set of line items. Callers must warn
// the cashier to verify the order before retrying, since a blind retry would
// create a duplicate header.
type ItemWriteError struct {
	OrderID   int64
	Failed    int
	Attempted int
	Err       error
}

func (e *ItemWriteError) Error() string {
	return fmt.Sprintf("could not record %d of %d line items for order %d: %v",
		e.Failed, e.Attempted, e.OrderID, e.Err)
}

func (e *ItemWriteError) Unwrap() error { return e.Err }

// OrderAPI is the backend surface the orchestrator writes to.
type OrderAPI interface {
	CreateOrder(ctx context.Context, header *models.OrderHeader) (int64, error)
	CreateLineItem(ctx context.Context, item *models.LineItem) error
}

// Orchestrator runs the two-phase order submission: one header write,
// then a concurrent fan-out of line-item writes keyed on the generated
// order identifier.
type Orchestrator struct {
	client   OrderAPI
	engine   *pricing.Engine
	logger   *logging.LoggerV2
	now      func() time.Time
	inFlight atomic.Bool
}

// NewOrchestrator creates a submission orchestrator.
func NewOrchestrator(client OrderAPI, engine *pricing.Engine, logger *logging.LoggerV2) *Orchestrator {
	return &Orchestrator{
		client: client,
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// Submit prices the cart, creates the order header, then fans out one
// line-item write per container sub-item and per standalone entry. On success
// the cart is cleared and the backend-assigned order id returned. On failure
// the cart is left untouched and the error distinguishes the header phase
// (*HeaderWriteError, nothing recorded) from the item phase (*ItemWriteError,
// header exists with incomplete items).
func (o *Orchestrator) Submit(ctx context.Context, cart *Cart, employeeID int) (int64, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return 0, ErrSubmissionInProgress
	}
	defer o.inFlight.Store(false)

	entries := cart.Entries()
	if err := validateCart(entries); err != nil {
		return 0, err
	}

	totals := o.engine.Compute(entries)
	header := &models.OrderHeader{
		Time:       o.now().UTC(),
		Total:      models.FormatAmount(totals.Total),
		EmployeeID: employeeID,
	}

	o.logger.Info("Submitting order", logging.Fields{
		"entry_count": len(entries),
		"total":       header.Total,
		"employee_id": employeeID,
	})

	orderID, err := o.client.CreateOrder(ctx, header)
	if err != nil {
		o.logger.Error("Order header write failed", logging.Fields{
			"error": err.Error(),
		})
		metrics.SubmissionFailures.WithLabelValues("header").Inc()
		return 0, &HeaderWriteError{Err: err}
	}

	items := BuildLineItems(orderID, entries)
	if failed, firstErr := o.writeLineItems(ctx, items); failed > 0 {
		o.logger.Error("Line item writes failed", logging.Fields{
			"order_id":  orderID,
			"failed":    failed,
			"attempted": len(items),
			"error":     firstErr.Error(),
		})
		metrics.SubmissionFailures.WithLabelValues("items").Inc()
		return 0, &ItemWriteError{
			OrderID:   orderID,
			Failed:    failed,
			Attempted: len(items),
			Err:       firstErr,
		}
	}

	cart.Clear()
	metrics.OrdersSubmitted.Inc()

	o.logger.Info("Order submitted", logging.Fields{
		"order_id":   orderID,
		"item_count": len(items),
	})

	return orderID, nil
}

// writeLineItems dispatches all item writes concurrently and waits for the
// full set to settle. Writes are independent of each other, so no ordering is
// imposed between them.
func (o *Orchestrator) writeLineItems(ctx context.Context, items []models.LineItem) (int, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failed   int
		firstErr error
	)

	for i := range items {
		wg.Add(1)
		go func(item models.LineItem) {
			defer wg.Done()
			if err := o.client.CreateLineItem(ctx, &item); err != nil {
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(items[i])
	}

	wg.Wait()
	return failed, firstErr
}

// BuildLineItems derives the line-item payloads for an order: one item per
// container sub-item, each referencing the container itself, and one item
// with a null container reference per standalone entry. Quantity is always 1.
func BuildLineItems(orderID int64, entries []models.CartEntry) []models.LineItem {
	items := make([]models.LineItem, 0, len(entries))

	for _, entry := range entries {
		if entry.Kind.IsContainer() {
			containerID := entry.ID
			for range entry.Items {
				items = append(items, models.LineItem{
					OrderID:     orderID,
					Quantity:    1,
					ContainerID: &containerID,
				})
			}
			continue
		}

		items = append(items, models.LineItem{
			OrderID:  orderID,
			Quantity: 1,
		})
	}

	return items
}

func validateCart(entries []models.CartEntry) error {
	if len(entries) == 0 {
		return apperrors.NewValidationError("cart", "cart is empty")
	}

	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	return nil
}
