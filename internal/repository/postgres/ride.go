package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
)

const rideColumns = `id, owner_id, origin, destination, departure, seats, COALESCE(notes, ''), active, created_on, deleted_on`

type rideRepository struct {
	db *sql.DB
}

func NewRideRepository(db *sql.DB) repository.RideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `INSERT INTO rides (owner_id, origin, destination, departure, seats, notes, active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	ride.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, ride.OwnerID, ride.Origin, ride.Destination, ride.Departure, ride.Seats, ride.Notes, ride.Active, ride.CreatedOn).Scan(&ride.ID)
}

func scanRide(row interface{ Scan(...any) error }) (*domain.Ride, error) {
	ride := &domain.Ride{}
	err := row.Scan(&ride.ID, &ride.OwnerID, &ride.Origin, &ride.Destination, &ride.Departure, &ride.Seats, &ride.Notes, &ride.Active, &ride.CreatedOn, &ride.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ride, nil
}

func (r *rideRepository) GetByID(ctx context.Context, id int32) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	return scanRide(r.db.QueryRowContext(ctx, query, id))
}

func (r *rideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `UPDATE rides SET origin=$1, destination=$2, departure=$3, seats=$4, notes=$5, active=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, ride.Origin, ride.Destination, ride.Departure, ride.Seats, ride.Notes, ride.Active, ride.ID)
	return err
}

func (r *rideRepository) Search(ctx context.Context, filter repository.RideFilter) ([]domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE active = TRUE AND deleted_on IS NULL`
	args := []interface{}{}
	argIdx := 1

	if filter.OriginContains != "" {
		query += fmt.Sprintf(" AND origin ILIKE '%%' || $%d || '%%'", argIdx)
		args = append(args, filter.OriginContains)
		argIdx++
	}
	if filter.DestinationContains != "" {
		query += fmt.Sprintf(" AND destination ILIKE '%%' || $%d || '%%'", argIdx)
		args = append(args, filter.DestinationContains)
		argIdx++
	}
	if filter.OnDate != nil {
		query += fmt.Sprintf(" AND DATE(departure) = DATE($%d)", argIdx)
		args = append(args, *filter.OnDate)
		argIdx++
	}
	if filter.DepartAfter != nil {
		query += fmt.Sprintf(" AND departure >= $%d", argIdx)
		args = append(args, *filter.DepartAfter)
		argIdx++
	}
	query += " ORDER BY departure ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, *ride)
	}
	return rides, rows.Err()
}

func (r *rideRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE owner_id = $1 AND deleted_on IS NULL ORDER BY departure ASC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, *ride)
	}
	return rides, rows.Err()
}

func (r *rideRepository) AcceptedCount(ctx context.Context, rideID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM seat_requests WHERE ride_id = $1 AND status = 'ACCEPTED'`
	err := r.db.QueryRowContext(ctx, query, rideID).Scan(&count)
	return count, err
}

// Cancel marks the ride deleted and force-declines its pending requests as
// one transaction, so a request can never be accepted on a ride that is
// already cancelled.
func (r *rideRepository) Cancel(ctx context.Context, rideID int32, deletedOn time.Time) ([]int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `UPDATE rides SET active = FALSE, deleted_on = $1 WHERE id = $2`, deletedOn, rideID)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`UPDATE seat_requests SET status = 'DECLINED', updated_on = $1 WHERE ride_id = $2 AND status = 'PENDING' RETURNING member_id`,
		deletedOn, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var declined []int32
	for rows.Next() {
		var memberID int32
		if err := rows.Scan(&memberID); err != nil {
			return nil, err
		}
		declined = append(declined, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return declined, nil
}

func (r *rideRepository) DeactivateDeparted(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE rides SET active = FALSE WHERE active = TRUE AND departure < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
