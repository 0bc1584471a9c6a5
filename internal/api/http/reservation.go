package http

import (
	"net/http"
)

func (s *Server) handleRequestSeat(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	req, err := s.reservationSvc.RequestSeat(r.Context(), memberID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleRequestsForRide(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	reqs, err := s.querySvc.RequestsForRide(r.Context(), memberID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (s *Server) handleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	req, err := s.reservationSvc.Accept(r.Context(), memberID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleDeclineRequest(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	req, err := s.reservationSvc.Decline(r.Context(), memberID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	reqs, err := s.reservationSvc.RequestsForMember(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}
