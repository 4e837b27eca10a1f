package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8082 {
		t.Errorf("server port = %d, want 8082", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Database.MigrationsPath != "migrations" {
		t.Errorf("migrations path = %q, want migrations", cfg.Database.MigrationsPath)
	}
	if cfg.Checkout.TaxRate != 0.08 {
		t.Errorf("tax rate = %v, want 0.08", cfg.Checkout.TaxRate)
	}
	if cfg.Checkout.DefaultEmployeeID != 99 {
		t.Errorf("default employee = %d, want 99", cfg.Checkout.DefaultEmployeeID)
	}
	if cfg.Kafka.OrdersTopic != "pos.orders" {
		t.Errorf("orders topic = %q, want pos.orders", cfg.Kafka.OrdersTopic)
	}
	if !cfg.Features.EnableOrderCaching || !cfg.Features.EnableOrderEvents {
		t.Errorf("expected feature flags on by default: %+v", cfg.Features)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CHECKOUT_TAX_RATE", "0.10")
	t.Setenv("CHECKOUT_EMPLOYEE_ID", "12")
	t.Setenv("FEATURE_ORDER_CACHING", "false")
	t.Setenv("REDIS_TTL", "60")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Checkout.TaxRate != 0.10 {
		t.Errorf("tax rate = %v, want 0.10", cfg.Checkout.TaxRate)
	}
	if cfg.Checkout.DefaultEmployeeID != 12 {
		t.Errorf("default employee = %d, want 12", cfg.Checkout.DefaultEmployeeID)
	}
	if cfg.Features.EnableOrderCaching {
		t.Error("expected order caching disabled")
	}
	if cfg.Redis.TTL != 60*time.Second {
		t.Errorf("redis ttl = %v, want 60s", cfg.Redis.TTL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("CHECKOUT_TAX_RATE", "lots")

	cfg := Load()

	if cfg.Server.Port != 8082 {
		t.Errorf("server port = %d, want default 8082", cfg.Server.Port)
	}
	if cfg.Checkout.TaxRate != 0.08 {
		t.Errorf("tax rate = %v, want default 0.08", cfg.Checkout.TaxRate)
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "pos",
		Password: "secret",
		Name:     "pos_orders",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 user=pos password=secret dbname=pos_orders sslmode=disable"
	if got := db.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
