package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentease-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	var in service.PaymentInput
	if err := decodeJSON(r, &in, false); err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := h.paymentSvc.CreatePayment(r.Context(), id.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "payment", payment, "Payment recorded")
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	payments, err := h.paymentSvc.ListPayments(r.Context(), id.UserID, id.Role, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "payments", payments, "")
}
