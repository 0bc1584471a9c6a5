package postgres

import (
	"database/sql"

	"carpool-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.RideRepository
	repository.SeatRequestRepository
	repository.RatingRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		MemberRepository:       NewMemberRepository(db),
		RideRepository:         NewRideRepository(db),
		SeatRequestRepository:  NewSeatRequestRepository(db),
		RatingRepository:       NewRatingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
