package http

import (
	"errors"
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

// Multipart bodies are capped a little above the largest accepted image so
// the service can report an oversized file itself.
const maxMultipartOverhead = 1 << 20

type statusRequest struct {
	Status domain.MotorbikeStatus `json:"status"`
}

func (s *Server) listMotorbikes(w http.ResponseWriter, r *http.Request) {
	page, err := pagination(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	categoryID, err := queryID(r, "category_id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	filter := domain.MotorbikeFilter{
		Status:     domain.MotorbikeStatus(r.URL.Query().Get("status")),
		CategoryID: categoryID,
		Search:     r.URL.Query().Get("search"),
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(r.Context(), w, domain.Validation(domain.CodeInvalidRequest, "unknown motorbike status %q", filter.Status))
		return
	}

	bikes, total, err := s.services.Motorbikes.List(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(s.toMotorbikeResponses(r.Context(), bikes), total, page))
}

func (s *Server) createMotorbike(w http.ResponseWriter, r *http.Request) {
	var in service.MotorbikeInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	bike, err := s.services.Motorbikes.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.toMotorbikeResponse(r.Context(), bike))
}

func (s *Server) getMotorbike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	bike, err := s.services.Motorbikes.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toMotorbikeResponse(r.Context(), bike))
}

func (s *Server) updateMotorbike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.MotorbikeInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	bike, err := s.services.Motorbikes.Update(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toMotorbikeResponse(r.Context(), bike))
}

func (s *Server) deleteMotorbike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := s.services.Motorbikes.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) changeMotorbikeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	bike, err := s.services.Motorbikes.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toMotorbikeResponse(r.Context(), bike))
}

// uploadMotorbikeImage accepts a multipart form with the file under "image".
func (s *Server) uploadMotorbikeImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes()+maxMultipartOverhead)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(r.Context(), w, domain.Validation(domain.CodeInvalidFile, "image is too large"))
			return
		}
		writeError(r.Context(), w, domain.Validation(domain.CodeInvalidFile, "multipart field \"image\" is required"))
		return
	}
	defer file.Close()

	bike, err := s.services.Motorbikes.UploadImage(r.Context(), id, header.Filename, header.Size, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toMotorbikeResponse(r.Context(), bike))
}

func (s *Server) deleteMotorbikeImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := s.services.Motorbikes.DeleteImage(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
