package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	page, err := pagination(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	customers, total, err := s.services.Customers.List(r.Context(), domain.CustomerFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(customers, total, page))
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in service.CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	customer, err := s.services.Customers.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	customer, err := s.services.Customers.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	customer, err := s.services.Customers.Update(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}
