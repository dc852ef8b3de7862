// Package http exposes the back-office REST API under /api/v1.
package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/o11y"
	"motorent-backoffice/internal/security"
	"motorent-backoffice/internal/service"
)

// Services groups the business services the handlers call.
type Services struct {
	Auth         service.AuthService
	Employees    service.EmployeeService
	Catalog      service.CatalogService
	Motorbikes   service.MotorbikeService
	Customers    service.CustomerService
	Discounts    service.DiscountService
	Contracts    service.ContractService
	Incidents    service.IncidentService
	Payments     service.PaymentService
	Maintenances service.MaintenanceService
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Tokens  security.TokenManager
	Metrics *o11y.Metrics
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Files serves locally stored uploads under /files. Nil when images
	// live on a remote provider.
	Files FileOpener
	// DB is pinged by /health.
	DB Pinger
	// MaxUploadBytes bounds image upload bodies.
	MaxUploadBytes int64
}

type Server struct {
	services Services
	tokens   security.TokenManager
	metrics  *o11y.Metrics
	gatherer prometheus.Gatherer
	files    FileOpener
	db       Pinger
	upload   int64
}

func NewServer(services Services, opts Options) *Server {
	return &Server{
		services: services,
		tokens:   opts.Tokens,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		files:    opts.Files,
		db:       opts.DB,
		upload:   opts.MaxUploadBytes,
	}
}

func (s *Server) maxUploadBytes() int64 {
	if s.upload <= 0 {
		return 10 << 20
	}
	return s.upload
}

// Router builds the full route table with middleware applied.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.tracing, s.observe, s.recoverer)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "ROUTE_NOT_FOUND", Message: "no such route"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
	})

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	if s.files != nil {
		r.HandleFunc("/files/{key:.+}", s.serveFile).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	route := func(method, path string, op config.Operation, h http.HandlerFunc) {
		api.HandleFunc(path, s.authorize(op, h)).Methods(method)
	}

	route(http.MethodPost, "/auth/login", config.OpPublic, s.login)
	route(http.MethodPost, "/auth/password-reset/request", config.OpPublic, s.requestPasswordReset)
	route(http.MethodPost, "/auth/password-reset/confirm", config.OpPublic, s.resetPassword)

	route(http.MethodGet, "/employees", config.OpEmployeeRead, s.listEmployees)
	route(http.MethodPost, "/employees", config.OpEmployeeCreate, s.createEmployee)
	route(http.MethodGet, "/employees/{id:[0-9]+}", config.OpEmployeeRead, s.getEmployee)
	route(http.MethodPut, "/employees/{id:[0-9]+}/role", config.OpEmployeeAssignRole, s.assignRole)

	route(http.MethodGet, "/categories", config.OpCatalogRead, s.listCategories)
	route(http.MethodPost, "/categories", config.OpCatalogWrite, s.createCategory)
	route(http.MethodGet, "/categories/{id:[0-9]+}", config.OpCatalogRead, s.getCategory)
	route(http.MethodPut, "/categories/{id:[0-9]+}", config.OpCatalogWrite, s.updateCategory)
	route(http.MethodDelete, "/categories/{id:[0-9]+}", config.OpCatalogWrite, s.deleteCategory)

	route(http.MethodGet, "/price-lists", config.OpCatalogRead, s.listPriceLists)
	route(http.MethodPost, "/price-lists", config.OpCatalogWrite, s.createPriceList)
	route(http.MethodGet, "/price-lists/{id:[0-9]+}", config.OpCatalogRead, s.getPriceList)
	route(http.MethodPut, "/price-lists/{id:[0-9]+}", config.OpCatalogWrite, s.updatePriceList)

	route(http.MethodGet, "/motorbikes", config.OpMotorbikeRead, s.listMotorbikes)
	route(http.MethodPost, "/motorbikes", config.OpMotorbikeWrite, s.createMotorbike)
	route(http.MethodGet, "/motorbikes/{id:[0-9]+}", config.OpMotorbikeRead, s.getMotorbike)
	route(http.MethodPut, "/motorbikes/{id:[0-9]+}", config.OpMotorbikeWrite, s.updateMotorbike)
	route(http.MethodDelete, "/motorbikes/{id:[0-9]+}", config.OpMotorbikeWrite, s.deleteMotorbike)
	route(http.MethodPut, "/motorbikes/{id:[0-9]+}/status", config.OpMotorbikeStatus, s.changeMotorbikeStatus)
	route(http.MethodPost, "/motorbikes/{id:[0-9]+}/image", config.OpMotorbikeImage, s.uploadMotorbikeImage)
	route(http.MethodDelete, "/motorbikes/{id:[0-9]+}/image", config.OpMotorbikeImage, s.deleteMotorbikeImage)

	route(http.MethodGet, "/customers", config.OpCustomerRead, s.listCustomers)
	route(http.MethodPost, "/customers", config.OpCustomerWrite, s.createCustomer)
	route(http.MethodGet, "/customers/{id:[0-9]+}", config.OpCustomerRead, s.getCustomer)
	route(http.MethodPut, "/customers/{id:[0-9]+}", config.OpCustomerWrite, s.updateCustomer)

	route(http.MethodGet, "/discounts", config.OpDiscountRead, s.listDiscounts)
	route(http.MethodPost, "/discounts", config.OpDiscountWrite, s.createDiscount)
	route(http.MethodGet, "/discounts/{id:[0-9]+}", config.OpDiscountRead, s.getDiscount)
	route(http.MethodPut, "/discounts/{id:[0-9]+}", config.OpDiscountWrite, s.updateDiscount)
	route(http.MethodDelete, "/discounts/{id:[0-9]+}", config.OpDiscountWrite, s.deleteDiscount)

	route(http.MethodPost, "/contracts/quote", config.OpContractRead, s.quoteContract)
	route(http.MethodGet, "/contracts", config.OpContractRead, s.listContracts)
	route(http.MethodPost, "/contracts", config.OpContractCreate, s.createContract)
	route(http.MethodGet, "/contracts/{id:[0-9]+}", config.OpContractRead, s.getContract)
	route(http.MethodPost, "/contracts/{id:[0-9]+}/activate", config.OpContractActivate, s.activateContract)
	route(http.MethodPost, "/contracts/{id:[0-9]+}/cancel", config.OpContractCancel, s.cancelContract)
	route(http.MethodPost, "/contracts/{id:[0-9]+}/settle", config.OpContractSettle, s.settleContract)

	route(http.MethodPost, "/contracts/{id:[0-9]+}/incident", config.OpIncidentReport, s.reportIncident)
	route(http.MethodGet, "/incidents/{id:[0-9]+}", config.OpIncidentRead, s.getIncident)
	route(http.MethodPost, "/incidents/{id:[0-9]+}/resolve", config.OpIncidentResolve, s.resolveIncident)

	route(http.MethodGet, "/contracts/{id:[0-9]+}/payment/preview", config.OpPaymentRead, s.previewPayment)
	route(http.MethodPost, "/contracts/{id:[0-9]+}/payment", config.OpPaymentProcess, s.processPayment)
	route(http.MethodGet, "/payments", config.OpPaymentRead, s.listPayments)

	route(http.MethodGet, "/maintenances", config.OpMaintenanceRead, s.listMaintenances)
	route(http.MethodPost, "/maintenances", config.OpMaintenanceWrite, s.createMaintenance)
	route(http.MethodPost, "/maintenances/{id:[0-9]+}/complete", config.OpMaintenanceWrite, s.completeMaintenance)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
