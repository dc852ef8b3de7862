package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

func (s *Server) previewPayment(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	breakdown, err := s.services.Payments.Preview(r.Context(), contractID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) processPayment(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.ProcessPaymentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payment, err := s.services.Payments.Process(r.Context(), claims.EmployeeID, contractID, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	page, err := pagination(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	filter := domain.PaymentFilter{
		Method:   domain.PaymentMethod(r.URL.Query().Get("method")),
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	if filter.Method != "" && !filter.Method.Valid() {
		writeError(r.Context(), w, domain.Validation(domain.CodeInvalidRequest, "unknown payment method %q", filter.Method))
		return
	}
	if filter.From, err = queryTime(r, "from"); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if filter.To, err = queryTime(r, "to"); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payments, total, err := s.services.Payments.List(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(payments, total, page))
}
