package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

func (s *Server) listDiscounts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	activeOnly, err := queryBool(r, "active")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	categoryID, err := queryID(r, "category_id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	discounts, total, err := s.services.Discounts.List(r.Context(), domain.DiscountFilter{
		ActiveOnly: activeOnly,
		CategoryID: categoryID,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(discounts, total, page))
}

func (s *Server) createDiscount(w http.ResponseWriter, r *http.Request) {
	var in service.DiscountInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	discount, err := s.services.Discounts.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, discount)
}

func (s *Server) getDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	discount, err := s.services.Discounts.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (s *Server) updateDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.DiscountInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	discount, err := s.services.Discounts.Update(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, discount)
}

func (s *Server) deleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := s.services.Discounts.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
