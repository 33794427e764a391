package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type StoreMetrics struct {
	Customers prometheus.Gauge
	Cities    prometheus.Gauge
}

type BusinessMetrics struct {
	CustomerCreateTotal *prometheus.CounterVec
}

var (
	Store = StoreMetrics{
		Customers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "customer_directory_customers",
				Help: "Number of customer records held in memory.",
			},
		),
		Cities: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "customer_directory_cities",
				Help: "Number of distinct cities across all customer records.",
			},
		),
	}

	Business = BusinessMetrics{
		CustomerCreateTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_directory_customer_create_total",
				Help: "Customer create attempts by outcome.",
			},
			[]string{"outcome"},
		),
	}
)

const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

func RecordStoreSnapshot(customers, cities int) {
	Store.Customers.Set(float64(customers))
	Store.Cities.Set(float64(cities))
}

func RecordCustomerCreate(outcome string) {
	Business.CustomerCreateTotal.WithLabelValues(outcome).Inc()
}
