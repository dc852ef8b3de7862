package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.services.Catalog.ListCategories(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	category, err := s.services.Catalog.CreateCategory(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	category, err := s.services.Catalog.GetCategory(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	category, err := s.services.Catalog.UpdateCategory(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := s.services.Catalog.DeleteCategory(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPriceLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.services.Catalog.ListPriceLists(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if lists == nil {
		lists = []domain.PriceList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) createPriceList(w http.ResponseWriter, r *http.Request) {
	var in service.PriceListInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	pl, err := s.services.Catalog.CreatePriceList(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pl)
}

func (s *Server) getPriceList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	pl, err := s.services.Catalog.GetPriceList(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, pl)
}

func (s *Server) updatePriceList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.PriceListInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	pl, err := s.services.Catalog.UpdatePriceList(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, pl)
}
