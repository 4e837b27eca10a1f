package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersSubmitted counts completed checkout submissions.
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_submitted_total",
		Help: "Number of checkout submissions that reached completion.",
	})

	// SubmissionFailures counts failed submissions by phase (header, items).
	SubmissionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_submission_failures_total",
		Help: "Number of failed checkout submissions by phase.",
	}, []string{"phase"})

	// OrdersCreated counts order headers persisted by the backend.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_created_total",
		Help: "Number of order headers created.",
	})

	// LineItemsCreated counts line items persisted by the backend.
	LineItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_line_items_created_total",
		Help: "Number of order line items created.",
	})
)
