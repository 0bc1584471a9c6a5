package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/logger"
	"carpool-backend/internal/observability"
	"carpool-backend/internal/repository"
)

type rideService struct {
	rideRepo   repository.RideRepository
	reqRepo    repository.SeatRequestRepository
	memberRepo repository.MemberRepository
	noteRepo   repository.NotificationRepository
	emailSvc   EmailService
	now        func() time.Time
}

func NewRideService(
	rideRepo repository.RideRepository,
	reqRepo repository.SeatRequestRepository,
	memberRepo repository.MemberRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) RideService {
	return &rideService{
		rideRepo:   rideRepo,
		reqRepo:    reqRepo,
		memberRepo: memberRepo,
		noteRepo:   noteRepo,
		emailSvc:   emailSvc,
		now:        time.Now,
	}
}

func validateRideInput(input PublishRideInput, now time.Time) error {
	if strings.TrimSpace(input.Origin) == "" {
		return fmt.Errorf("%w: origin is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if input.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", domain.ErrValidation)
	}
	// Past departures are rejected at publish time. This is independent of
	// the "ride has passed" check used for rating eligibility.
	if input.Departure.Before(now) {
		return fmt.Errorf("%w: departure must not be in the past", domain.ErrValidation)
	}
	return nil
}

func (s *rideService) Publish(ctx context.Context, ownerID int32, input PublishRideInput) (*domain.Ride, error) {
	if err := validateRideInput(input, s.now()); err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		OwnerID:     ownerID,
		Origin:      strings.TrimSpace(input.Origin),
		Destination: strings.TrimSpace(input.Destination),
		Departure:   input.Departure,
		Seats:       input.Seats,
		Notes:       input.Notes,
		Active:      true,
	}
	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}
	observability.RidesPublished.Inc()
	logger.Info("Ride published", "ride_id", ride.ID, "owner_id", ownerID, "origin", ride.Origin, "destination", ride.Destination)
	return ride, nil
}

func (s *rideService) Get(ctx context.Context, rideID int32) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if owner, err := s.memberRepo.GetByID(ctx, ride.OwnerID); err == nil {
		ride.Owner = owner
	}
	return ride, nil
}

func (s *rideService) Search(ctx context.Context, filter repository.RideFilter) ([]domain.Ride, error) {
	return s.rideRepo.Search(ctx, filter)
}

func (s *rideService) Update(ctx context.Context, actorID, rideID int32, input PublishRideInput) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the ride owner can edit it", domain.ErrPermission)
	}
	if ride.Cancelled() {
		return nil, fmt.Errorf("%w: ride has been cancelled", domain.ErrState)
	}
	if err := validateRideInput(input, s.now()); err != nil {
		return nil, err
	}

	// Seats may not drop below the already-accepted count.
	accepted, err := s.rideRepo.AcceptedCount(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if input.Seats < accepted {
		return nil, fmt.Errorf("%w: %d seats already accepted", domain.ErrValidation, accepted)
	}

	ride.Origin = strings.TrimSpace(input.Origin)
	ride.Destination = strings.TrimSpace(input.Destination)
	ride.Departure = input.Departure
	ride.Seats = input.Seats
	ride.Notes = input.Notes
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

func (s *rideService) Cancel(ctx context.Context, actorID, rideID int32) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.OwnerID != actorID {
		return fmt.Errorf("%w: only the ride owner can cancel it", domain.ErrPermission)
	}
	if ride.Cancelled() {
		// Idempotent: cancelling twice is a no-op.
		return nil
	}

	declined, err := s.rideRepo.Cancel(ctx, rideID, s.now())
	if err != nil {
		return err
	}
	logger.Info("Ride cancelled", "ride_id", rideID, "owner_id", actorID, "declined_requests", len(declined))

	// Cascading declines must not be silent: every affected requester gets
	// a notification row and an email. Delivery failures are logged only.
	for _, memberID := range declined {
		notif := &domain.Notification{
			MemberID: memberID,
			Title:    "Ride Cancelled",
			Message:  fmt.Sprintf("The ride %s to %s was cancelled by its owner", ride.Origin, ride.Destination),
			Attributes: map[string]string{
				"type":    "RIDE_CANCELLED",
				"ride_id": fmt.Sprintf("%d", rideID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)

		if member, err := s.memberRepo.GetByID(ctx, memberID); err == nil {
			if err := s.emailSvc.SendRideCancelledNotification(ctx, member.Email, ride.Origin, ride.Destination, ride.Departure); err != nil {
				logger.Warn("Failed to send cancellation email", "member_id", memberID, "error", err)
			}
		}
	}
	return nil
}

func (s *rideService) RemainingCapacity(ctx context.Context, rideID int32) (int32, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return 0, err
	}
	accepted, err := s.rideRepo.AcceptedCount(ctx, rideID)
	if err != nil {
		return 0, err
	}
	return ride.Seats - accepted, nil
}

func (s *rideService) ContactURL(ctx context.Context, actorID, rideID int32) (string, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return "", err
	}
	if actorID != ride.OwnerID {
		if _, err := s.reqRepo.GetAcceptedByRideAndMember(ctx, rideID, actorID); err != nil {
			return "", fmt.Errorf("%w: contact is shared with accepted passengers only", domain.ErrPermission)
		}
	}

	owner, err := s.memberRepo.GetByID(ctx, ride.OwnerID)
	if err != nil {
		return "", err
	}
	if owner.Phone == "" {
		return "", fmt.Errorf("%w: ride owner has no contact phone", domain.ErrNotFound)
	}

	text := fmt.Sprintf("Hi, I found your ride to %s on the campus carpool board!", ride.Destination)
	return "https://wa.me/" + owner.Phone + "?text=" + url.QueryEscape(text), nil
}
