package postgres_test

import (
	"context"
	"testing"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
	"carpool-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rideRows(rides ...*domain.Ride) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "owner_id", "origin", "destination", "departure", "seats", "notes", "active", "created_on", "deleted_on"})
	for _, ride := range rides {
		rows.AddRow(ride.ID, ride.OwnerID, ride.Origin, ride.Destination, ride.Departure, ride.Seats, ride.Notes, ride.Active, ride.CreatedOn, ride.DeletedOn)
	}
	return rows
}

func TestRideRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRideRepository(db)
	departure := time.Now().Add(24 * time.Hour)

	mock.ExpectQuery(`INSERT INTO rides`).
		WithArgs(int32(10), "North Campus", "Downtown", departure, int32(3), "", true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(1)))

	ride := &domain.Ride{
		OwnerID:     10,
		Origin:      "North Campus",
		Destination: "Downtown",
		Departure:   departure,
		Seats:       3,
		Active:      true,
	}
	err = repo.Create(context.Background(), ride)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), ride.ID)
	assert.False(t, ride.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRideRepository(db)

	t.Run("Found", func(t *testing.T) {
		stored := &domain.Ride{ID: 1, OwnerID: 10, Origin: "North Campus", Destination: "Downtown", Departure: time.Now(), Seats: 3, Active: true, CreatedOn: time.Now()}
		mock.ExpectQuery(`SELECT .+ FROM rides WHERE id = \$1`).
			WithArgs(int32(1)).
			WillReturnRows(rideRows(stored))

		ride, err := repo.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Downtown", ride.Destination)
		assert.Nil(t, ride.DeletedOn)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM rides WHERE id = \$1`).
			WithArgs(int32(99)).
			WillReturnRows(rideRows())

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRideRepository(db)

	t.Run("NoFilters", func(t *testing.T) {
		stored := &domain.Ride{ID: 1, OwnerID: 10, Origin: "North Campus", Destination: "Downtown", Departure: time.Now(), Seats: 3, Active: true, CreatedOn: time.Now()}
		mock.ExpectQuery(`FROM rides WHERE active = TRUE AND deleted_on IS NULL ORDER BY departure ASC`).
			WillReturnRows(rideRows(stored))

		rides, err := repo.Search(context.Background(), repository.RideFilter{})
		assert.NoError(t, err)
		assert.Len(t, rides, 1)
	})

	t.Run("OriginAndDate", func(t *testing.T) {
		onDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`origin ILIKE '%' \|\| \$1 \|\| '%' AND DATE\(departure\) = DATE\(\$2\)`).
			WithArgs("north", onDate).
			WillReturnRows(rideRows())

		rides, err := repo.Search(context.Background(), repository.RideFilter{
			OriginContains: "north",
			OnDate:         &onDate,
		})
		assert.NoError(t, err)
		assert.Empty(t, rides)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRideRepository(db)
	deletedOn := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rides SET active = FALSE, deleted_on = \$1 WHERE id = \$2`).
		WithArgs(deletedOn, int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`UPDATE seat_requests SET status = 'DECLINED', updated_on = \$1 WHERE ride_id = \$2 AND status = 'PENDING' RETURNING member_id`).
		WithArgs(deletedOn, int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}).AddRow(int32(20)).AddRow(int32(30)))
	mock.ExpectCommit()

	declined, err := repo.Cancel(context.Background(), 1, deletedOn)
	assert.NoError(t, err)
	assert.Equal(t, []int32{20, 30}, declined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_AcceptedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRideRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM seat_requests WHERE ride_id = \$1 AND status = 'ACCEPTED'`).
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(2)))

	count, err := repo.AcceptedCount(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRideRepository_DeactivateDeparted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRideRepository(db)
	now := time.Now()

	mock.ExpectExec(`UPDATE rides SET active = FALSE WHERE active = TRUE AND departure < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.DeactivateDeparted(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
