package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pearview-systems/pos-checkout-service/internal/config"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
)

var testLogger = logging.NewLoggerV2("clients-test")

func testClient(baseURL string) *HTTPOrderClient {
	return NewHTTPOrderClient(config.ServiceConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		APIKey:  "test-key",
	}, testLogger)
}

func TestCreateOrder(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("bad request body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.CreateOrderResponse{OrderID: 77})
	}))
	defer srv.Close()

	header := &models.OrderHeader{
		Time:       time.Date(2024, 11, 2, 18, 30, 0, 0, time.UTC),
		Total:      "11.34",
		EmployeeID: 99,
	}

	orderID, err := testClient(srv.URL).CreateOrder(context.Background(), header)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if orderID != 77 {
		t.Errorf("order ID = %d, want 77", orderID)
	}

	if gotBody["total"] != "11.34" {
		t.Errorf("wire total = %v, want \"11.34\"", gotBody["total"])
	}
	if gotBody["employee_id"] != float64(99) {
		t.Errorf("wire employee_id = %v, want 99", gotBody["employee_id"])
	}
	if _, ok := gotBody["time"].(string); !ok {
		t.Errorf("wire time should be an ISO-8601 string, got %v", gotBody["time"])
	}
}

func TestCreateOrderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).CreateOrder(context.Background(), &models.OrderHeader{}); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestCreateOrderRejectsInvalidID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.CreateOrderResponse{OrderID: 0})
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).CreateOrder(context.Background(), &models.OrderHeader{}); err == nil {
		t.Error("expected error on missing order id")
	}
}

func TestCreateLineItem(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/order-items" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	item := &models.LineItem{OrderID: 77, Quantity: 1}
	if err := testClient(srv.URL).CreateLineItem(context.Background(), item); err != nil {
		t.Fatalf("CreateLineItem failed: %v", err)
	}

	if gotBody["order_id"] != float64(77) {
		t.Errorf("wire order_id = %v, want 77", gotBody["order_id"])
	}
	if v, present := gotBody["container_id"]; !present || v != nil {
		t.Errorf("wire container_id = %v, want explicit null", v)
	}
}

func TestMockOrderClientEnforcesOrdering(t *testing.T) {
	mock := NewMockOrderClient(1)

	if err := mock.CreateLineItem(context.Background(), &models.LineItem{OrderID: 1, Quantity: 1}); err == nil {
		t.Error("expected error for line item before header")
	}
}
