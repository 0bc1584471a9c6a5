package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
)

const seatRequestColumns = `id, ride_id, member_id, status, created_on, updated_on`

type seatRequestRepository struct {
	db *sql.DB
}

func NewSeatRequestRepository(db *sql.DB) repository.SeatRequestRepository {
	return &seatRequestRepository{db: db}
}

func (r *seatRequestRepository) Create(ctx context.Context, req *domain.SeatRequest) error {
	query := `INSERT INTO seat_requests (ride_id, member_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	req.Status = domain.SeatRequestStatusPending
	req.CreatedOn = now
	req.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, req.RideID, req.MemberID, req.Status, req.CreatedOn, req.UpdatedOn).Scan(&req.ID)
}

func scanSeatRequest(row interface{ Scan(...any) error }) (*domain.SeatRequest, error) {
	req := &domain.SeatRequest{}
	err := row.Scan(&req.ID, &req.RideID, &req.MemberID, &req.Status, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *seatRequestRepository) GetByID(ctx context.Context, id int32) (*domain.SeatRequest, error) {
	query := `SELECT ` + seatRequestColumns + ` FROM seat_requests WHERE id = $1`
	return scanSeatRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *seatRequestRepository) GetActiveByRideAndMember(ctx context.Context, rideID, memberID int32) (*domain.SeatRequest, error) {
	query := `SELECT ` + seatRequestColumns + ` FROM seat_requests WHERE ride_id = $1 AND member_id = $2 AND status <> 'DECLINED'`
	return scanSeatRequest(r.db.QueryRowContext(ctx, query, rideID, memberID))
}

func (r *seatRequestRepository) GetAcceptedByRideAndMember(ctx context.Context, rideID, memberID int32) (*domain.SeatRequest, error) {
	query := `SELECT ` + seatRequestColumns + ` FROM seat_requests WHERE ride_id = $1 AND member_id = $2 AND status = 'ACCEPTED'`
	return scanSeatRequest(r.db.QueryRowContext(ctx, query, rideID, memberID))
}

// Accept performs the capacity check and the status write as one atomic
// unit. The ride row is locked FOR UPDATE for the duration of the
// transaction, which serializes concurrent accepts on the same ride: the
// second accept recounts after the first has committed and sees the seat
// gone.
func (r *seatRequestRepository) Accept(ctx context.Context, requestID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var rideID int32
	var status domain.SeatRequestStatus
	err = tx.QueryRowContext(ctx,
		`SELECT ride_id, status FROM seat_requests WHERE id = $1`, requestID).Scan(&rideID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if status != domain.SeatRequestStatusPending {
		return domain.ErrState
	}

	var seats int32
	err = tx.QueryRowContext(ctx,
		`SELECT seats FROM rides WHERE id = $1 FOR UPDATE`, rideID).Scan(&seats)
	if err != nil {
		return err
	}

	var accepted int32
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM seat_requests WHERE ride_id = $1 AND status = 'ACCEPTED'`, rideID).Scan(&accepted)
	if err != nil {
		return err
	}
	if accepted >= seats {
		return domain.ErrCapacity
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE seat_requests SET status = 'ACCEPTED', updated_on = $1 WHERE id = $2`, time.Now(), requestID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *seatRequestRepository) Decline(ctx context.Context, requestID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE seat_requests SET status = 'DECLINED', updated_on = $1 WHERE id = $2`, time.Now(), requestID)
	return err
}

func (r *seatRequestRepository) ListByRide(ctx context.Context, rideID int32) ([]domain.SeatRequest, error) {
	query := `SELECT sr.id, sr.ride_id, sr.member_id, sr.status, sr.created_on, sr.updated_on, m.name, m.email, COALESCE(m.phone, ''), m.campus
	          FROM seat_requests sr JOIN members m ON m.id = sr.member_id
	          WHERE sr.ride_id = $1 ORDER BY sr.created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.SeatRequest
	for rows.Next() {
		var req domain.SeatRequest
		member := &domain.Member{}
		if err := rows.Scan(&req.ID, &req.RideID, &req.MemberID, &req.Status, &req.CreatedOn, &req.UpdatedOn, &member.Name, &member.Email, &member.Phone, &member.Campus); err != nil {
			return nil, err
		}
		member.ID = req.MemberID
		req.Member = member
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *seatRequestRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.SeatRequest, error) {
	query := `SELECT ` + seatRequestColumns + ` FROM seat_requests WHERE member_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.SeatRequest
	for rows.Next() {
		req, err := scanSeatRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}
