package http

import (
	"net/http"

	"motorent-backoffice/internal/service"
)

func (s *Server) reportIncident(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.ReportIncidentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	incident, err := s.services.Incidents.Report(r.Context(), contractID, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, incident)
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	incident, err := s.services.Incidents.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}

func (s *Server) resolveIncident(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.ResolveIncidentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	incident, err := s.services.Incidents.Resolve(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, incident)
}
