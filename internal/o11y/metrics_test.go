package o11y

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/config"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/contracts", 200, 0.01)
	m.ObserveRequest("GET", "/api/v1/contracts/{id}", 404, 0.01)
	m.ObserveRequest("POST", "/api/v1/contracts", 500, 0.2)
	m.ContractCreated("HOURLY", "PENDING")
	m.ContractCreated("HOURLY", "PENDING")
	m.ContractSettled()
	m.ContractCancelled("job")
	m.PaymentProcessed("CASH", decimal.NewFromInt(155000))
	m.DiscountsExpired(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/contracts", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestErrors.WithLabelValues("GET", "/api/v1/contracts/{id}", "404", "client")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestErrors.WithLabelValues("POST", "/api/v1/contracts", "500", "server")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.contractsCreated.WithLabelValues("HOURLY", "PENDING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contractsSettled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contractsCancelled.WithLabelValues("job")))
	assert.Equal(t, 155000.0, testutil.ToFloat64(m.paymentsAmount.WithLabelValues("CASH")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.discountsExpired))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", 200, 0)
		m.ContractCreated("DAILY", "ACTIVE")
		m.ContractSettled()
		m.PaymentProcessed("CARD", decimal.NewFromInt(1))
		m.DiscountsExpired(1)
	})
}

func TestSetupWithoutEndpoint(t *testing.T) {
	obs, cleanup, err := Setup(context.Background(), config.TracingConfig{})
	require.NoError(t, err)
	defer cleanup(context.Background())

	assert.Nil(t, obs.Tracer)
	assert.NotNil(t, obs.Metrics)
	families, err := obs.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
