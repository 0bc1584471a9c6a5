package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carpool-backend/internal/domain"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	member, err := s.identitySvc.GetProfile(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())

	var req struct {
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Campus string `json:"campus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := s.identitySvc.UpdateProfile(r.Context(), memberID, req.Name, req.Phone, domain.Campus(req.Campus))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleMemberSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.querySvc.MemberSummary(r.Context(), pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRateMember(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())

	var req struct {
		RideID  int32  `json:"ride_id"`
		Score   int32  `json:"score"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, err := s.reputationSvc.Rate(r.Context(), memberID, pathID(r), req.RideID, req.Score, req.Comment)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

func (s *Server) handleRatingsReceived(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.reputationSvc.RatingsReceived(r.Context(), pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ratings": ratings})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	notes, total, err := s.noteSvc.GetNotifications(r.Context(), memberID, int32(page), int32(pageSize))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes, "total": total})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	if err := s.noteSvc.MarkAsRead(r.Context(), memberID, pathID(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
