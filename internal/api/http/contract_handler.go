package http

import (
	"net/http"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) quoteContract(w http.ResponseWriter, r *http.Request) {
	var in service.QuoteInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	quote, err := s.services.Contracts.Quote(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) listContracts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	filter := domain.ContractFilter{
		Status:   domain.ContractStatus(r.URL.Query().Get("status")),
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	if filter.CustomerID, err = queryID(r, "customer_id"); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if filter.MotorbikeID, err = queryID(r, "motorbike_id"); err != nil {
		writeError(r.Context(), w, err)
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

	contracts, total, err := s.services.Contracts.List(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(contracts, total, page))
}

func (s *Server) createContract(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromContext(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.CreateContractInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	contract, err := s.services.Contracts.Create(r.Context(), claims.EmployeeID, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (s *Server) getContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	contract, err := s.services.Contracts.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (s *Server) activateContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	contract, err := s.services.Contracts.Activate(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (s *Server) cancelContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var req cancelRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	contract, err := s.services.Contracts.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (s *Server) settleContract(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	var in service.SettleContractInput
	if err := decodeOptionalJSON(r, &in); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	breakdown, err := s.services.Contracts.Settle(r.Context(), id, in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
