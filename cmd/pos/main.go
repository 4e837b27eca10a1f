// Command pos submits a cashier cart to the orders backend: it prices the
// cart, prints the billed summary, creates the order header, then records the
// line items.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pearview-systems/pos-checkout-service/internal/checkout"
	"github.com/pearview-systems/pos-checkout-service/internal/clients"
	"github.com/pearview-systems/pos-checkout-service/internal/config"
	"github.com/pearview-systems/pos-checkout-service/internal/logging"
	"github.com/pearview-systems/pos-checkout-service/internal/models"
	"github.com/pearview-systems/pos-checkout-service/internal/pricing"
)

func main() {
	cfg := config.Load()

	cartPath := flag.String("cart", "", "path to a cart JSON file (array of cart entries)")
	employeeID := flag.Int("employee", cfg.Checkout.DefaultEmployeeID, "employee ID recorded on the order")
	serverURL := flag.String("server", cfg.OrdersAPI.BaseURL, "orders backend base URL")
	flag.Parse()

	if *cartPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pos -cart cart.json [-employee id] [-server url]")
		os.Exit(2)
	}

	entries, err := loadCart(*cartPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load cart: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerV2("pos-terminal")

	clientCfg := cfg.OrdersAPI
	clientCfg.BaseURL = *serverURL

	engine := pricing.NewEngine(cfg.Checkout.TaxRate)
	client := clients.NewHTTPOrderClient(clientCfg, logger)
	orchestrator := checkout.NewOrchestrator(client, engine, logger)

	cart := checkout.NewCart()
	for _, entry := range entries {
		cart.Add(entry)
	}

	printSummary(entries, engine)

	orderID, err := orchestrator.Submit(context.Background(), cart, *employeeID)
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	fmt.Printf("Order placed successfully: Order ID %d\n", orderID)
}

func loadCart(path string) ([]models.CartEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []models.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func printSummary(entries []models.CartEntry, engine *pricing.Engine) {
	fmt.Println("Order Summary")
	for _, entry := range entries {
		fmt.Printf("  %-24s %s\n", entry.Name, models.FormatCurrency(float64(entry.Price)))
		for _, item := range entry.Items {
			fmt.Printf("    - %s\n", item.Name)
		}
	}

	totals := engine.Compute(entries)
	fmt.Printf("Subtotal: %s\n", models.FormatCurrency(totals.Subtotal))
	fmt.Printf("Tax:      %s\n", models.FormatCurrency(totals.Tax))
	fmt.Printf("Total:    %s\n", models.FormatCurrency(totals.Total))
}

func reportFailure(err error) {
	var headerErr *checkout.HeaderWriteError
	var itemErr *checkout.ItemWriteError

	switch {
	case errors.As(err, &itemErr):
		fmt.Fprintf(os.Stderr,
			"Order %d may be incomplete: %d of %d items were not recorded.\n"+
				"Check the order on the backend before retrying; a blind retry will create a duplicate order.\n",
			itemErr.OrderID, itemErr.Failed, itemErr.Attempted)
	case errors.As(err, &headerErr):
		fmt.Fprintln(os.Stderr, "Failed to place order. Nothing was recorded; please try again.")
	default:
		fmt.Fprintf(os.Stderr, "Failed to place order: %v\n", err)
	}
}
