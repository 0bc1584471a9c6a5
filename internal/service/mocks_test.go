package service_test

import (
	"context"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockMemberRepo struct{ mock.Mock }

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	return m.Called(ctx, member).Error(0)
}

type MockRideRepo struct{ mock.Mock }

func (m *MockRideRepo) Create(ctx context.Context, ride *domain.Ride) error {
	return m.Called(ctx, ride).Error(0)
}

func (m *MockRideRepo) GetByID(ctx context.Context, id int32) (*domain.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ride), args.Error(1)
}

func (m *MockRideRepo) Update(ctx context.Context, ride *domain.Ride) error {
	return m.Called(ctx, ride).Error(0)
}

func (m *MockRideRepo) Search(ctx context.Context, filter repository.RideFilter) ([]domain.Ride, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ride), args.Error(1)
}

func (m *MockRideRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Ride, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ride), args.Error(1)
}

func (m *MockRideRepo) AcceptedCount(ctx context.Context, rideID int32) (int32, error) {
	args := m.Called(ctx, rideID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockRideRepo) Cancel(ctx context.Context, rideID int32, deletedOn time.Time) ([]int32, error) {
	args := m.Called(ctx, rideID, deletedOn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

func (m *MockRideRepo) DeactivateDeparted(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockSeatRequestRepo struct{ mock.Mock }

func (m *MockSeatRequestRepo) Create(ctx context.Context, req *domain.SeatRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockSeatRequestRepo) GetByID(ctx context.Context, id int32) (*domain.SeatRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatRequest), args.Error(1)
}

func (m *MockSeatRequestRepo) GetActiveByRideAndMember(ctx context.Context, rideID, memberID int32) (*domain.SeatRequest, error) {
	args := m.Called(ctx, rideID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatRequest), args.Error(1)
}

func (m *MockSeatRequestRepo) GetAcceptedByRideAndMember(ctx context.Context, rideID, memberID int32) (*domain.SeatRequest, error) {
	args := m.Called(ctx, rideID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatRequest), args.Error(1)
}

func (m *MockSeatRequestRepo) Accept(ctx context.Context, requestID int32) error {
	return m.Called(ctx, requestID).Error(0)
}

func (m *MockSeatRequestRepo) Decline(ctx context.Context, requestID int32) error {
	return m.Called(ctx, requestID).Error(0)
}

func (m *MockSeatRequestRepo) ListByRide(ctx context.Context, rideID int32) ([]domain.SeatRequest, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatRequest), args.Error(1)
}

func (m *MockSeatRequestRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.SeatRequest, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatRequest), args.Error(1)
}

type MockRatingRepo struct{ mock.Mock }

func (m *MockRatingRepo) Create(ctx context.Context, rating *domain.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepo) Exists(ctx context.Context, raterID, rateeID, rideID int32) (bool, error) {
	args := m.Called(ctx, raterID, rateeID, rideID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepo) AverageForMember(ctx context.Context, memberID int32) (float64, int32, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}

func (m *MockRatingRepo) ListByRatee(ctx context.Context, memberID int32) ([]domain.Rating, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rating), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, memberID int32) error {
	return m.Called(ctx, id, memberID).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendSeatRequestNotification(ctx context.Context, ownerEmail, requesterName, origin, destination string) error {
	return m.Called(ctx, ownerEmail, requesterName, origin, destination).Error(0)
}

func (m *MockEmailService) SendRequestAcceptedNotification(ctx context.Context, requesterEmail, ownerName, origin, destination string, departure time.Time) error {
	return m.Called(ctx, requesterEmail, ownerName, origin, destination, departure).Error(0)
}

func (m *MockEmailService) SendRequestDeclinedNotification(ctx context.Context, requesterEmail, origin, destination string) error {
	return m.Called(ctx, requesterEmail, origin, destination).Error(0)
}

func (m *MockEmailService) SendRideCancelledNotification(ctx context.Context, requesterEmail, origin, destination string, departure time.Time) error {
	return m.Called(ctx, requesterEmail, origin, destination, departure).Error(0)
}

func (m *MockEmailService) SendDepartureReminder(ctx context.Context, memberEmail, origin, destination string, departure time.Time) error {
	return m.Called(ctx, memberEmail, origin, destination, departure).Error(0)
}
