package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type rentalRequest struct {
	PropertyID     string `json:"property_id"`
	RentalDuration *int   `json:"rental_duration,omitempty"`
}

type terminationRequest struct {
	RequestedEndDate string `json:"requested_end_date"`
	Reason           string `json:"reason,omitempty"`
}

type renewalRequest struct {
	RenewalDuration int `json:"renewal_duration"`
}

func (h *RentalHandler) Request(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var req rentalRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if req.PropertyID == "" {
		writeError(w, r, apperror.Validation("property_id is required"))
		return
	}
	rental, err := h.rentalSvc.RequestRental(r.Context(), id.UserID, req.PropertyID, req.RentalDuration)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "rental", rental, "Rental requested")
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	rentals, err := h.rentalSvc.ListRentals(r.Context(), id.UserID, id.Role, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "rentals", rentals, "")
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	rental, err := h.rentalSvc.GetRental(r.Context(), id.UserID, id.Role, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "rental", rental, "")
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	rental, err := h.rentalSvc.ApproveRental(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "rental", rental, "Rental approved")
}

func (h *RentalHandler) Decline(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	rental, err := h.rentalSvc.DeclineRental(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "rental", rental, "Rental declined")
}

func (h *RentalHandler) RequestTermination(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var req terminationRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if req.RequestedEndDate == "" {
		writeError(w, r, apperror.Validation("requested_end_date is required"))
		return
	}
	term, err := h.rentalSvc.RequestTermination(r.Context(), id.UserID, mux.Vars(r)["id"], req.RequestedEndDate, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "termination", term, "Termination requested")
}

func (h *RentalHandler) ApproveTermination(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	term, err := h.rentalSvc.ApproveTermination(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "termination", term, "Termination approved")
}

func (h *RentalHandler) RejectTermination(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	term, err := h.rentalSvc.RejectTermination(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "termination", term, "Termination rejected")
}

func (h *RentalHandler) PendingTerminations(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	terms, err := h.rentalSvc.ListPendingTerminations(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "terminations", terms, "")
}

func (h *RentalHandler) RequestRenewal(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var req renewalRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	renewal, err := h.rentalSvc.RequestRenewal(r.Context(), id.UserID, mux.Vars(r)["id"], req.RenewalDuration)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "renewal", renewal, "Renewal requested")
}

func (h *RentalHandler) ApproveRenewal(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	renewal, err := h.rentalSvc.ApproveRenewal(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "renewal", renewal, "Renewal approved")
}

func (h *RentalHandler) RejectRenewal(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	renewal, err := h.rentalSvc.RejectRenewal(r.Context(), id.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "renewal", renewal, "Renewal rejected")
}

func (h *RentalHandler) PendingRenewals(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	renewals, err := h.rentalSvc.ListPendingRenewals(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "renewals", renewals, "")
}
