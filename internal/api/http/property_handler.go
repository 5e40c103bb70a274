package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/service"
)

type PropertyHandler struct {
	propertySvc service.PropertyService
	rentalSvc   service.RentalService
}

func NewPropertyHandler(propertySvc service.PropertyService, rentalSvc service.RentalService) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc, rentalSvc: rentalSvc}
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

type relistRequest struct {
	StartDate *string `json:"start_date,omitempty"`
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var in service.PropertyInput
	if err := decodeJSON(r, &in, false); err != nil {
		writeError(w, r, err)
		return
	}
	prop, err := h.propertySvc.CreateProperty(r.Context(), id.UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "property", prop, "")
}

func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	props, err := h.propertySvc.ListMyProperties(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "properties", props, "")
}

func (h *PropertyHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	props, err := h.propertySvc.ListAvailableProperties(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "properties", props, "")
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	prop, err := h.propertySvc.GetProperty(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "property", prop, "")
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var patch service.PropertyPatch
	if err := decodeJSON(r, &patch, false); err != nil {
		writeError(w, r, err)
		return
	}
	prop, err := h.propertySvc.UpdateProperty(r.Context(), id.UserID, mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "property", prop, "")
}

func (h *PropertyHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var req availabilityRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Available == nil {
		writeError(w, r, apperror.Validation("available is required"))
		return
	}
	prop, err := h.propertySvc.SetAvailability(r.Context(), id.UserID, mux.Vars(r)["id"], *req.Available)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "property", prop, "")
}

func (h *PropertyHandler) Relist(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var req relistRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	prop, err := h.rentalSvc.ListPropertyAgain(r.Context(), id.UserID, mux.Vars(r)["id"], req.StartDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "property", prop, "Property listed again")
}
