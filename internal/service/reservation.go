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

type reservationService struct {
	reqRepo    repository.SeatRequestRepository
	rideRepo   repository.RideRepository
	memberRepo repository.MemberRepository
	noteRepo   repository.NotificationRepository
	emailSvc   EmailService
	now        func() time.Time
}

func NewReservationService(
	reqRepo repository.SeatRequestRepository,
	rideRepo repository.RideRepository,
	memberRepo repository.MemberRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ReservationService {
	return &reservationService{
		reqRepo:    reqRepo,
		rideRepo:   rideRepo,
		memberRepo: memberRepo,
		noteRepo:   noteRepo,
		emailSvc:   emailSvc,
		now:        time.Now,
	}
}

func (s *reservationService) RequestSeat(ctx context.Context, memberID, rideID int32) (*domain.SeatRequest, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.OwnerID == memberID {
		return nil, fmt.Errorf("%w: owners cannot request a seat on their own ride", domain.ErrPermission)
	}
	if ride.Cancelled() {
		return nil, fmt.Errorf("%w: ride has been cancelled", domain.ErrState)
	}
	if ride.Departed(s.now()) {
		return nil, fmt.Errorf("%w: ride has already departed", domain.ErrState)
	}

	// At most one pending/accepted request per (ride, member).
	if _, err := s.reqRepo.GetActiveByRideAndMember(ctx, rideID, memberID); err == nil {
		return nil, fmt.Errorf("%w: an active request already exists for this ride", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	req := &domain.SeatRequest{
		RideID:   rideID,
		MemberID: memberID,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	logger.Info("Seat requested", "request_id", req.ID, "ride_id", rideID, "member_id", memberID)

	// Notify the owner. Best effort, the request stands either way.
	requester, rerr := s.memberRepo.GetByID(ctx, memberID)
	owner, oerr := s.memberRepo.GetByID(ctx, ride.OwnerID)
	if rerr == nil && oerr == nil {
		notif := &domain.Notification{
			MemberID: owner.ID,
			Title:    "New Seat Request",
			Message:  fmt.Sprintf("%s requested a seat on your ride %s to %s", requester.Name, ride.Origin, ride.Destination),
			Attributes: map[string]string{
				"type":       "SEAT_REQUEST",
				"request_id": fmt.Sprintf("%d", req.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
		if err := s.emailSvc.SendSeatRequestNotification(ctx, owner.Email, requester.Name, ride.Origin, ride.Destination); err != nil {
			logger.Warn("Failed to send seat request email", "owner_id", owner.ID, "error", err)
		}
	}

	return req, nil
}

func (s *reservationService) Accept(ctx context.Context, actorID, requestID int32) (*domain.SeatRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if ride.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the ride owner can accept requests", domain.ErrPermission)
	}
	if req.Status != domain.SeatRequestStatusPending {
		return nil, fmt.Errorf("%w: request is %s, not pending", domain.ErrState, req.Status)
	}

	// The repository re-checks the status and the capacity under a ride row
	// lock; the pre-checks above only produce friendlier errors on the
	// common paths.
	if err := s.reqRepo.Accept(ctx, requestID); err != nil {
		if errors.Is(err, domain.ErrCapacity) {
			observability.CapacityDenied.Inc()
			return nil, fmt.Errorf("%w: all %d seats are taken", domain.ErrCapacity, ride.Seats)
		}
		return nil, err
	}
	req.Status = domain.SeatRequestStatusAccepted
	observability.SeatsAccepted.Inc()
	logger.Info("Seat request accepted", "request_id", requestID, "ride_id", ride.ID)

	if requester, err := s.memberRepo.GetByID(ctx, req.MemberID); err == nil {
		owner, _ := s.memberRepo.GetByID(ctx, actorID)
		ownerName := ""
		if owner != nil {
			ownerName = owner.Name
		}
		notif := &domain.Notification{
			MemberID: requester.ID,
			Title:    "Seat Request Accepted",
			Message:  fmt.Sprintf("Your request for the ride %s to %s was accepted", ride.Origin, ride.Destination),
			Attributes: map[string]string{
				"type":       "REQUEST_ACCEPTED",
				"request_id": fmt.Sprintf("%d", requestID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
		if err := s.emailSvc.SendRequestAcceptedNotification(ctx, requester.Email, ownerName, ride.Origin, ride.Destination, ride.Departure); err != nil {
			logger.Warn("Failed to send acceptance email", "member_id", requester.ID, "error", err)
		}
	}

	return req, nil
}

func (s *reservationService) Decline(ctx context.Context, actorID, requestID int32) (*domain.SeatRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if ride.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the ride owner can decline requests", domain.ErrPermission)
	}
	if req.Status == domain.SeatRequestStatusDeclined {
		// Re-declining a declined request is a no-op, which keeps retries
		// safe.
		return req, nil
	}
	if req.Status != domain.SeatRequestStatusPending {
		return nil, fmt.Errorf("%w: request is %s, not pending", domain.ErrState, req.Status)
	}

	if err := s.reqRepo.Decline(ctx, requestID); err != nil {
		return nil, err
	}
	req.Status = domain.SeatRequestStatusDeclined
	logger.Info("Seat request declined", "request_id", requestID, "ride_id", ride.ID)

	if requester, err := s.memberRepo.GetByID(ctx, req.MemberID); err == nil {
		notif := &domain.Notification{
			MemberID: requester.ID,
			Title:    "Seat Request Declined",
			Message:  fmt.Sprintf("Your request for the ride %s to %s was declined", ride.Origin, ride.Destination),
			Attributes: map[string]string{
				"type":       "REQUEST_DECLINED",
				"request_id": fmt.Sprintf("%d", requestID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
		if err := s.emailSvc.SendRequestDeclinedNotification(ctx, requester.Email, ride.Origin, ride.Destination); err != nil {
			logger.Warn("Failed to send decline email", "member_id", requester.ID, "error", err)
		}
	}

	return req, nil
}

func (s *reservationService) RequestsForMember(ctx context.Context, memberID int32) ([]domain.SeatRequest, error) {
	return s.reqRepo.ListByMember(ctx, memberID)
}
