package service

import (
	"context"
	"fmt"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
)

type queryService struct {
	rideRepo   repository.RideRepository
	reqRepo    repository.SeatRequestRepository
	memberRepo repository.MemberRepository
	ratingRepo repository.RatingRepository
	now        func() time.Time
}

func NewQueryService(
	rideRepo repository.RideRepository,
	reqRepo repository.SeatRequestRepository,
	memberRepo repository.MemberRepository,
	ratingRepo repository.RatingRepository,
) QueryService {
	return &queryService{
		rideRepo:   rideRepo,
		reqRepo:    reqRepo,
		memberRepo: memberRepo,
		ratingRepo: ratingRepo,
		now:        time.Now,
	}
}

func (s *queryService) RidesForOwner(ctx context.Context, ownerID int32) ([]domain.Ride, error) {
	return s.rideRepo.ListByOwner(ctx, ownerID)
}

func (s *queryService) RequestsForRide(ctx context.Context, actorID, rideID int32) ([]domain.SeatRequest, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	// Authorization happens here, not in the caller: request lists expose
	// other members' identities.
	if ride.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the ride owner can list its requests", domain.ErrPermission)
	}
	return s.reqRepo.ListByRide(ctx, rideID)
}

func (s *queryService) UpcomingRides(ctx context.Context) ([]domain.Ride, error) {
	now := s.now()
	return s.rideRepo.Search(ctx, repository.RideFilter{DepartAfter: &now})
}

func (s *queryService) MemberSummary(ctx context.Context, memberID int32) (*MemberSummary, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.ratingRepo.AverageForMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	summary := &MemberSummary{
		Member:       member,
		RatingsCount: count,
	}
	if count > 0 {
		summary.AverageScore = &avg
	}
	return summary, nil
}
