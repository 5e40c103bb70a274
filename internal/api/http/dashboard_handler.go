package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentease-backend/internal/service"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (h *DashboardHandler) RentDue(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	items, err := h.dashboardSvc.RentDue(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "rent_due", items, "")
}

func (h *DashboardHandler) CreditScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.dashboardSvc.CreditScore(r.Context(), mux.Vars(r)["tenantId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "credit_score", score, "")
}

func (h *DashboardHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	report, err := h.dashboardSvc.ComplianceRate(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "compliance", report, "")
}
