package repository

import (
	"context"
	"time"

	"carpool-backend/internal/domain"
)

// RideFilter narrows a ride search. Zero values mean "no constraint".
// Origin and destination are case-insensitive substring matches; OnDate
// matches the date component of the departure timestamp.
type RideFilter struct {
	OriginContains      string
	DestinationContains string
	OnDate              *time.Time
	DepartAfter         *time.Time
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
}

type RideRepository interface {
	Create(ctx context.Context, ride *domain.Ride) error
	GetByID(ctx context.Context, id int32) (*domain.Ride, error)
	Update(ctx context.Context, ride *domain.Ride) error
	// Search returns active, non-deleted rides ordered by departure ascending.
	Search(ctx context.Context, filter RideFilter) ([]domain.Ride, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Ride, error)
	AcceptedCount(ctx context.Context, rideID int32) (int32, error)
	// Cancel soft-deletes the ride and force-declines its pending requests
	// in one transaction. It returns the IDs of the members whose pending
	// requests were declined so callers can notify them.
	Cancel(ctx context.Context, rideID int32, deletedOn time.Time) ([]int32, error)
	DeactivateDeparted(ctx context.Context, now time.Time) (int64, error)
}

type SeatRequestRepository interface {
	Create(ctx context.Context, req *domain.SeatRequest) error
	GetByID(ctx context.Context, id int32) (*domain.SeatRequest, error)
	// GetActiveByRideAndMember returns the member's pending or accepted
	// request on the ride, or domain.ErrNotFound when none exists.
	GetActiveByRideAndMember(ctx context.Context, rideID, memberID int32) (*domain.SeatRequest, error)
	GetAcceptedByRideAndMember(ctx context.Context, rideID, memberID int32) (*domain.SeatRequest, error)
	// Accept flips a pending request to accepted iff the ride still has a
	// free seat. The capacity recount and the status write happen inside one
	// transaction holding a row lock on the ride, so two concurrent accepts
	// cannot both take the last seat. Returns domain.ErrCapacity when the
	// ride is full and domain.ErrState when the request is not pending.
	Accept(ctx context.Context, requestID int32) error
	Decline(ctx context.Context, requestID int32) error
	ListByRide(ctx context.Context, rideID int32) ([]domain.SeatRequest, error)
	ListByMember(ctx context.Context, memberID int32) ([]domain.SeatRequest, error)
}

type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	Exists(ctx context.Context, raterID, rateeID, rideID int32) (bool, error)
	// AverageForMember returns the mean score and the number of ratings
	// received. A count of zero means the member is unrated; the average is
	// meaningless in that case.
	AverageForMember(ctx context.Context, memberID int32) (float64, int32, error)
	ListByRatee(ctx context.Context, memberID int32) ([]domain.Rating, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, memberID int32) error
}
