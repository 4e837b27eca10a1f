package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/pearview-systems/pos-checkout-service/internal/config"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

// HTTPOrderClient talks to the orders backend over HTTP/JSON.
type HTTPOrderClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *logging.LoggerV2
}

// NewHTTPOrderClient creates a new HTTP-based orders client.
func NewHTTPOrderClient(cfg config.ServiceConfig, logger *logging.LoggerV2) *HTTPOrderClient {
	return &HTTPOrderClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// CreateOrder persists an order header and returns the backend-assigned id.
func (c *HTTPOrderClient) CreateOrder(ctx context.Context, header *models.OrderHeader) (int64, error) {
	c.logger.Debug("Creating order header", logging.Fields{
		"total":       header.Total,
		"employee_id": header.EmployeeID,
	})

	body, err := json.Marshal(header)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/api/orders", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Order request failed", logging.Fields{
			"error": err.Error(),
		})
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("Order request returned error", logging.Fields{
			"status_code": resp.StatusCode,
		})
		return 0, fmt.Errorf("orders service returned status %d", resp.StatusCode)
	}

	var result models.CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	if result.OrderID <= 0 {
		return 0, fmt.Errorf("orders service returned invalid order id %d", result.OrderID)
	}

	c.logger.Info("Order header created", logging.Fields{
		"order_id": result.OrderID,
		"total":    header.Total,
	})

	return result.OrderID, nil
}

// CreateLineItem persists a single order line item.
func (c *HTTPOrderClient) CreateLineItem(ctx context.Context, item *models.LineItem) error {
	c.logger.Debug("Creating line item", logging.Fields{
		"order_id":     item.OrderID,
		"container_id": item.ContainerID,
	})

	body, err := json.Marshal(item)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/order-items", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Line item request failed", logging.Fields{
			"order_id": item.OrderID,
			"error":    err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("orders service returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *HTTPOrderClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// MockOrderClient is an in-memory implementation for testing. It records
// every write and can be told to fail either phase.
type MockOrderClient struct {
	mu sync.Mutex

	NextOrderID    int64
	HeaderErr      error
	LineItemErr    error
	LineItemErrPos int // fail only the write at this index (0-based); -1 fails all

	Headers   []models.OrderHeader
	LineItems []models.LineItem
}

// NewMockOrderClient creates a mock client assigning the given order id.
func NewMockOrderClient(nextOrderID int64) *MockOrderClient {
	return &MockOrderClient{NextOrderID: nextOrderID, LineItemErrPos: -1}
}

func (m *MockOrderClient) CreateOrder(ctx context.Context, header *models.OrderHeader) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.HeaderErr != nil {
		return 0, m.HeaderErr
	}

	m.Headers = append(m.Headers, *header)
	return m.NextOrderID, nil
}

func (m *MockOrderClient) CreateLineItem(ctx context.Context, item *models.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Headers) == 0 {
		return fmt.Errorf("line item for order %d submitted before header", item.OrderID)
	}

	pos := len(m.LineItems)
	m.LineItems = append(m.LineItems, *item)

	if m.LineItemErr != nil && (m.LineItemErrPos < 0 || m.LineItemErrPos == pos) {
		return m.LineItemErr
	}
	return nil
}

// Recorded returns copies of the recorded writes.
func (m *MockOrderClient) Recorded() ([]models.OrderHeader, []models.LineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	headers := make([]models.OrderHeader, len(m.Headers))
	copy(headers, m.Headers)
	items := make([]models.LineItem, len(m.LineItems))
	copy(items, m.LineItems)
	return headers, items
}
