package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/logger"
	"carpool-backend/internal/observability"
	"carpool-backend/internal/repository"
)

type reputationService struct {
	ratingRepo repository.RatingRepository
	rideRepo   repository.RideRepository
	reqRepo    repository.SeatRequestRepository
	now        func() time.Time
}

func NewReputationService(
	ratingRepo repository.RatingRepository,
	rideRepo repository.RideRepository,
	reqRepo repository.SeatRequestRepository,
) ReputationService {
	return &reputationService{
		ratingRepo: ratingRepo,
		rideRepo:   rideRepo,
		reqRepo:    reqRepo,
		now:        time.Now,
	}
}

func (s *reputationService) Rate(ctx context.Context, raterID, rateeID, rideID, score int32, comment string) (*domain.Rating, error) {
	if score < domain.MinScore || score > domain.MaxScore {
		return nil, fmt.Errorf("%w: score must be between %d and %d", domain.ErrValidation, domain.MinScore, domain.MaxScore)
	}
	if raterID == rateeID {
		return nil, domain.ErrSelfRating
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !ride.Departed(s.now()) {
		return nil, fmt.Errorf("%w: the ride has not departed yet", domain.ErrEligibility)
	}

	// The pair must have shared the ride: one side is the owner, the other
	// held an accepted seat request.
	var passengerID int32
	switch {
	case ride.OwnerID == raterID:
		passengerID = rateeID
	case ride.OwnerID == rateeID:
		passengerID = raterID
	default:
		return nil, fmt.Errorf("%w: neither member owned this ride", domain.ErrEligibility)
	}
	if _, err := s.reqRepo.GetAcceptedByRideAndMember(ctx, rideID, passengerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no accepted seat request links these members on this ride", domain.ErrEligibility)
		}
		return nil, err
	}

	exists, err := s.ratingRepo.Exists(ctx, raterID, rateeID, rideID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateRating
	}

	rating := &domain.Rating{
		RaterID: raterID,
		RateeID: rateeID,
		RideID:  rideID,
		Score:   score,
		Comment: comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	observability.RatingsCreated.Inc()
	logger.Info("Rating recorded", "rater_id", raterID, "ratee_id", rateeID, "ride_id", rideID, "score", score)
	return rating, nil
}

func (s *reputationService) AverageScore(ctx context.Context, memberID int32) (float64, int32, error) {
	return s.ratingRepo.AverageForMember(ctx, memberID)
}

func (s *reputationService) RatingsReceived(ctx context.Context, memberID int32) ([]domain.Rating, error) {
	return s.ratingRepo.ListByRatee(ctx, memberID)
}
