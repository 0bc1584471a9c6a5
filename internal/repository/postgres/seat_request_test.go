package postgres_test

import (
	"context"
	"testing"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSeatRequestRepository(db)

	mock.ExpectQuery(`INSERT INTO seat_requests`).
		WithArgs(int32(1), int32(20), domain.SeatRequestStatusPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(7)))

	req := &domain.SeatRequest{RideID: 1, MemberID: 20}
	err = repo.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), req.ID)
	assert.Equal(t, domain.SeatRequestStatusPending, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatRequestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSeatRequestRepository(db)

	mock.ExpectQuery(`SELECT id, ride_id, member_id, status, created_on, updated_on FROM seat_requests WHERE id = \$1`).
		WithArgs(int32(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ride_id", "member_id", "status", "created_on", "updated_on"}))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatRequestRepository_Accept(t *testing.T) {
	t.Run("SeatAvailable", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewSeatRequestRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ride_id, status FROM seat_requests WHERE id = \$1`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"ride_id", "status"}).AddRow(int32(1), "PENDING"))
		mock.ExpectQuery(`SELECT seats FROM rides WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"seats"}).AddRow(int32(2)))
		mock.ExpectQuery(`SELECT count\(\*\) FROM seat_requests WHERE ride_id = \$1 AND status = 'ACCEPTED'`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
		mock.ExpectExec(`UPDATE seat_requests SET status = 'ACCEPTED'`).
			WithArgs(sqlmock.AnyArg(), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Accept(context.Background(), 7)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CapacityFull", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewSeatRequestRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ride_id, status FROM seat_requests WHERE id = \$1`).
			WithArgs(int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"ride_id", "status"}).AddRow(int32(1), "PENDING"))
		mock.ExpectQuery(`SELECT seats FROM rides WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"seats"}).AddRow(int32(1)))
		mock.ExpectQuery(`SELECT count\(\*\) FROM seat_requests WHERE ride_id = \$1 AND status = 'ACCEPTED'`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
		mock.ExpectRollback()

		err = repo.Accept(context.Background(), 8)
		assert.ErrorIs(t, err, domain.ErrCapacity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RequestNotPending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewSeatRequestRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ride_id, status FROM seat_requests WHERE id = \$1`).
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"ride_id", "status"}).AddRow(int32(1), "DECLINED"))
		mock.ExpectRollback()

		err = repo.Accept(context.Background(), 9)
		assert.ErrorIs(t, err, domain.ErrState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RequestMissing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewSeatRequestRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT ride_id, status FROM seat_requests WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"ride_id", "status"}))
		mock.ExpectRollback()

		err = repo.Accept(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeatRequestRepository_ListByRide(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSeatRequestRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "ride_id", "member_id", "status", "created_on", "updated_on", "name", "email", "phone", "campus"}).
		AddRow(int32(7), int32(1), int32(20), "PENDING", now, now, "Bia", "bia@campus.edu", "", "MAIN").
		AddRow(int32(8), int32(1), int32(30), "ACCEPTED", now, now, "Caio", "caio@campus.edu", "5511988887777", "NORTH")
	mock.ExpectQuery(`FROM seat_requests sr JOIN members m ON m.id = sr.member_id`).
		WithArgs(int32(1)).
		WillReturnRows(rows)

	reqs, err := repo.ListByRide(context.Background(), 1)
	assert.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "Bia", reqs[0].Member.Name)
	assert.Equal(t, int32(20), reqs[0].Member.ID)
	assert.Equal(t, domain.SeatRequestStatusAccepted, reqs[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
