package o11y

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics holds the HTTP and business collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestErrors   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	contractsCreated   *prometheus.CounterVec
	contractsSettled   prometheus.Counter
	contractsCancelled *prometheus.CounterVec
	paymentsTotal      *prometheus.CounterVec
	paymentsAmount     *prometheus.CounterVec
	discountsExpired   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_request_errors_total",
			Help: "Total number of HTTP request errors",
		}, []string{"method", "path", "status", "error_type"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),

		contractsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_contracts_created_total",
			Help: "Rental contracts created, by rental type and initial status",
		}, []string{"rental_type", "status"}),
		contractsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rental_contracts_settled_total",
			Help: "Rental contracts settled",
		}),
		contractsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_contracts_cancelled_total",
			Help: "Rental contracts cancelled, by trigger",
		}, []string{"trigger"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_processed_total",
			Help: "Payments recorded, by method",
		}, []string{"method"}),
		paymentsAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payments_amount_total",
			Help: "Sum of recorded payment amounts, by method",
		}, []string{"method"}),
		discountsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "discounts_expired_total",
			Help: "Discounts deactivated by the expiry job",
		}),
	}
	reg.MustRegister(
		m.httpRequestsTotal, m.httpRequestErrors, m.httpRequestDuration,
		m.contractsCreated, m.contractsSettled, m.contractsCancelled,
		m.paymentsTotal, m.paymentsAmount, m.discountsExpired,
	)
	return m
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	if m == nil {
		return
	}
	statusStr := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	switch {
	case status >= 500:
		m.httpRequestErrors.WithLabelValues(method, path, statusStr, "server").Inc()
	case status >= 400:
		m.httpRequestErrors.WithLabelValues(method, path, statusStr, "client").Inc()
	}
	m.httpRequestDuration.WithLabelValues(method, path, statusStr).Observe(seconds)
}

func (m *Metrics) ContractCreated(rentalType, status string) {
	if m == nil {
		return
	}
	m.contractsCreated.WithLabelValues(rentalType, status).Inc()
}

func (m *Metrics) ContractSettled() {
	if m == nil {
		return
	}
	m.contractsSettled.Inc()
}

func (m *Metrics) ContractCancelled(trigger string) {
	if m == nil {
		return
	}
	m.contractsCancelled.WithLabelValues(trigger).Inc()
}

func (m *Metrics) PaymentProcessed(method string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(method).Inc()
	f, _ := amount.Float64()
	m.paymentsAmount.WithLabelValues(method).Add(f)
}

func (m *Metrics) DiscountsExpired(n int) {
	if m == nil {
		return
	}
	m.discountsExpired.Add(float64(n))
}
