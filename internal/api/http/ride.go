package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"carpool-backend/internal/repository"
	"carpool-backend/internal/service"

	"github.com/gorilla/mux"
)

type rideRequest struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Seats       int32     `json:"seats"`
	Notes       string    `json:"notes"`
}

func pathID(r *http.Request) int32 {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return int32(id)
}

func (s *Server) handlePublishRide(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())

	var req rideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ride, err := s.rideSvc.Publish(r.Context(), memberID, service.PublishRideInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		Departure:   req.Departure,
		Seats:       req.Seats,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ride)
}

func (s *Server) handleGetRide(w http.ResponseWriter, r *http.Request) {
	ride, err := s.rideSvc.Get(r.Context(), pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ride)
}

func (s *Server) handleSearchRides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.RideFilter{
		OriginContains:      q.Get("origin"),
		DestinationContains: q.Get("destination"),
	}
	if dateStr := q.Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		filter.OnDate = &date
	}
	if q.Get("upcoming") == "true" {
		now := time.Now()
		filter.DepartAfter = &now
	}

	rides, err := s.rideSvc.Search(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rides": rides})
}

func (s *Server) handleUpdateRide(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())

	var req rideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ride, err := s.rideSvc.Update(r.Context(), memberID, pathID(r), service.PublishRideInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		Departure:   req.Departure,
		Seats:       req.Seats,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ride)
}

func (s *Server) handleCancelRide(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	if err := s.rideSvc.Cancel(r.Context(), memberID, pathID(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *Server) handleRemainingCapacity(w http.ResponseWriter, r *http.Request) {
	remaining, err := s.rideSvc.RemainingCapacity(r.Context(), pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"remaining_capacity": remaining})
}

func (s *Server) handleRideContact(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	contactURL, err := s.rideSvc.ContactURL(r.Context(), memberID, pathID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"contact_url": contactURL})
}

func (s *Server) handleMyRides(w http.ResponseWriter, r *http.Request) {
	memberID, _ := MemberIDFromContext(r.Context())
	rides, err := s.querySvc.RidesForOwner(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rides": rides})
}
