package service

import (
	"context"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
)

// IdentityService is the boundary contract with the presentation layer's
// login flow. The rest of the core only ever sees an authenticated member
// ID; it never reads ambient request state.
type IdentityService interface {
	Register(ctx context.Context, name, email, phone, password string, campus domain.Campus) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	VerifyCredential(ctx context.Context, member *domain.Member, secret string) bool
	GetProfile(ctx context.Context, memberID int32) (*domain.Member, error)
	UpdateProfile(ctx context.Context, memberID int32, name, phone string, campus domain.Campus) (*domain.Member, error)
}

// PublishRideInput carries the owner-supplied fields of a new ride.
type PublishRideInput struct {
	Origin      string
	Destination string
	Departure   time.Time
	Seats       int32
	Notes       string
}

type RideService interface {
	Publish(ctx context.Context, ownerID int32, input PublishRideInput) (*domain.Ride, error)
	Get(ctx context.Context, rideID int32) (*domain.Ride, error)
	Search(ctx context.Context, filter repository.RideFilter) ([]domain.Ride, error)
	Update(ctx context.Context, actorID, rideID int32, input PublishRideInput) (*domain.Ride, error)
	Cancel(ctx context.Context, actorID, rideID int32) error
	RemainingCapacity(ctx context.Context, rideID int32) (int32, error)
	// ContactURL returns a wa.me link for the ride owner's phone. Only the
	// owner and members holding an accepted request may see it.
	ContactURL(ctx context.Context, actorID, rideID int32) (string, error)
}

type ReservationService interface {
	RequestSeat(ctx context.Context, memberID, rideID int32) (*domain.SeatRequest, error)
	Accept(ctx context.Context, actorID, requestID int32) (*domain.SeatRequest, error)
	Decline(ctx context.Context, actorID, requestID int32) (*domain.SeatRequest, error)
	RequestsForMember(ctx context.Context, memberID int32) ([]domain.SeatRequest, error)
}

type ReputationService interface {
	Rate(ctx context.Context, raterID, rateeID, rideID, score int32, comment string) (*domain.Rating, error)
	// AverageScore returns the mean of all scores received by the member and
	// the number of ratings. Count zero means unrated; the average carries
	// no meaning then.
	AverageScore(ctx context.Context, memberID int32) (float64, int32, error)
	RatingsReceived(ctx context.Context, memberID int32) ([]domain.Rating, error)
}

// MemberSummary is the facade's read model for a member's public profile.
type MemberSummary struct {
	Member       *domain.Member `json:"member"`
	AverageScore *float64       `json:"average_score,omitempty"` // nil when unrated
	RatingsCount int32          `json:"ratings_count"`
}

// QueryService composes the other services for read paths. It holds no
// state of its own but repeats authorization checks rather than trusting
// the caller to have done them.
type QueryService interface {
	RidesForOwner(ctx context.Context, ownerID int32) ([]domain.Ride, error)
	RequestsForRide(ctx context.Context, actorID, rideID int32) ([]domain.SeatRequest, error)
	UpcomingRides(ctx context.Context) ([]domain.Ride, error)
	MemberSummary(ctx context.Context, memberID int32) (*MemberSummary, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, memberID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, memberID, notificationID int32) error
}

type EmailService interface {
	SendSeatRequestNotification(ctx context.Context, ownerEmail, requesterName, origin, destination string) error
	SendRequestAcceptedNotification(ctx context.Context, requesterEmail, ownerName, origin, destination string, departure time.Time) error
	SendRequestDeclinedNotification(ctx context.Context, requesterEmail, origin, destination string) error
	SendRideCancelledNotification(ctx context.Context, requesterEmail, origin, destination string, departure time.Time) error
	SendDepartureReminder(ctx context.Context, memberEmail, origin, destination string, departure time.Time) error
}
