package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

// listMaintenances requires ?motorbike_id since records are only browsed
// per motorbike.
func (s *Server) listMaintenances(w http.ResponseWriter, r *http.Request) {
	motorbikeID, err := queryID(r, "motorbike_id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if motorbikeID == 0 {
		writeError(r.Context(), w, domain.Validation(domain.CodeInvalidRequest, "motorbike_id is required"))
		return
	}

	records, err := s.services.Maintenances.ListByMotorbike(r.Context(), motorbikeID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if records == nil {
		records = []domain.Maintenance{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) createMaintenance(w http.ResponseWriter, r *http.Request) {
	var in service.CreateMaintenanceInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	record, err := s.services.Maintenances.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) completeMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.CompleteMaintenanceInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	record, err := s.services.Maintenances.Complete(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
