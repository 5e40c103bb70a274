package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentease-backend/internal/metrics"
	"rentease-backend/internal/security"
	"rentease-backend/internal/service"
)

// Services are the application services the API exposes.
type Services struct {
	Auth      service.AuthService
	Property  service.PropertyService
	Rental    service.RentalService
	Payment   service.PaymentService
	Dashboard service.DashboardService
}

type RouterOptions struct {
	Metrics *metrics.Metrics
	// MetricsPath serves the Prometheus registry when set.
	MetricsPath    string
	MetricsHandler http.Handler
	// Health reports whether the record store is reachable.
	Health func(ctx context.Context) error
}

// NewRouter builds the API. Every route is named; the name selects its
// security rule.
func NewRouter(svcs Services, tokens security.TokenManager, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(recoverPanics, observe(opts.Metrics), NewAuthMiddleware(tokens).Handler)

	router.HandleFunc("/healthz", healthHandler(opts.Health)).Methods(http.MethodGet).Name("health")
	if opts.MetricsPath != "" {
		handler := opts.MetricsHandler
		if handler == nil {
			handler = promhttp.Handler()
		}
		router.Handle(opts.MetricsPath, handler).Methods(http.MethodGet).Name("metrics")
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	auth := NewAuthHandler(svcs.Auth)
	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost).Name("auth.register")
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost).Name("auth.login")

	props := NewPropertyHandler(svcs.Property, svcs.Rental)
	api.HandleFunc("/properties", props.Create).Methods(http.MethodPost).Name("properties.create")
	api.HandleFunc("/properties/mine", props.ListMine).Methods(http.MethodGet).Name("properties.mine")
	api.HandleFunc("/properties/available", props.ListAvailable).Methods(http.MethodGet).Name("properties.available")
	api.HandleFunc("/properties/{id}", props.Get).Methods(http.MethodGet).Name("properties.get")
	api.HandleFunc("/properties/{id}", props.Update).Methods(http.MethodPut).Name("properties.update")
	api.HandleFunc("/properties/{id}/availability", props.SetAvailability).Methods(http.MethodPut).Name("properties.availability")
	api.HandleFunc("/properties/{id}/relist", props.Relist).Methods(http.MethodPost).Name("properties.relist")

	rentals := NewRentalHandler(svcs.Rental)
	api.HandleFunc("/rentals", rentals.Request).Methods(http.MethodPost).Name("rentals.request")
	api.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet).Name("rentals.list")
	api.HandleFunc("/rentals/{id}", rentals.Get).Methods(http.MethodGet).Name("rentals.get")
	api.HandleFunc("/rentals/{id}/approve", rentals.Approve).Methods(http.MethodPost).Name("rentals.approve")
	api.HandleFunc("/rentals/{id}/decline", rentals.Decline).Methods(http.MethodPost).Name("rentals.decline")
	api.HandleFunc("/rentals/{id}/terminations", rentals.RequestTermination).Methods(http.MethodPost).Name("terminations.request")
	api.HandleFunc("/rentals/{id}/renewals", rentals.RequestRenewal).Methods(http.MethodPost).Name("renewals.request")
	api.HandleFunc("/terminations/pending", rentals.PendingTerminations).Methods(http.MethodGet).Name("terminations.pending")
	api.HandleFunc("/terminations/{id}/approve", rentals.ApproveTermination).Methods(http.MethodPost).Name("terminations.approve")
	api.HandleFunc("/terminations/{id}/reject", rentals.RejectTermination).Methods(http.MethodPost).Name("terminations.reject")
	api.HandleFunc("/renewals/pending", rentals.PendingRenewals).Methods(http.MethodGet).Name("renewals.pending")
	api.HandleFunc("/renewals/{id}/approve", rentals.ApproveRenewal).Methods(http.MethodPost).Name("renewals.approve")
	api.HandleFunc("/renewals/{id}/reject", rentals.RejectRenewal).Methods(http.MethodPost).Name("renewals.reject")

	payments := NewPaymentHandler(svcs.Payment)
	api.HandleFunc("/rentals/{id}/payments", payments.Create).Methods(http.MethodPost).Name("payments.create")
	api.HandleFunc("/rentals/{id}/payments", payments.List).Methods(http.MethodGet).Name("payments.list")

	dash := NewDashboardHandler(svcs.Dashboard)
	api.HandleFunc("/dashboard/rent-due", dash.RentDue).Methods(http.MethodGet).Name("dashboard.rent_due")
	api.HandleFunc("/dashboard/credit-score/{tenantId}", dash.CreditScore).Methods(http.MethodGet).Name("dashboard.credit_score")
	api.HandleFunc("/dashboard/compliance", dash.Compliance).Methods(http.MethodGet).Name("dashboard.compliance")

	return router
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, envelope{"success": false, "message": "record store unavailable"})
				return
			}
		}
		writeOK(w, http.StatusOK, "", nil, "ok")
	}
}
