package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

type assignRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.services.Employees.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in service.CreateEmployeeInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	employee, err := s.services.Employees.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	employee, err := s.services.Employees.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (s *Server) assignRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var req assignRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	employee, err := s.services.Employees.AssignRole(r.Context(), claims.EmployeeID, id, req.Role)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}
