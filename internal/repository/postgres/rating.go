package postgres

import (
	"context"
	"database/sql"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
)

type ratingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `INSERT INTO ratings (rater_id, ratee_id, ride_id, score, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	rating.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, rating.RaterID, rating.RateeID, rating.RideID, rating.Score, rating.Comment, rating.CreatedOn).Scan(&rating.ID)
}

func (r *ratingRepository) Exists(ctx context.Context, raterID, rateeID, rideID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ratings WHERE rater_id = $1 AND ratee_id = $2 AND ride_id = $3)`
	err := r.db.QueryRowContext(ctx, query, raterID, rateeID, rideID).Scan(&exists)
	return exists, err
}

func (r *ratingRepository) AverageForMember(ctx context.Context, memberID int32) (float64, int32, error) {
	var avg sql.NullFloat64
	var count int32
	query := `SELECT AVG(score), count(*) FROM ratings WHERE ratee_id = $1`
	if err := r.db.QueryRowContext(ctx, query, memberID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	return avg.Float64, count, nil
}

func (r *ratingRepository) ListByRatee(ctx context.Context, memberID int32) ([]domain.Rating, error) {
	query := `SELECT id, rater_id, ratee_id, ride_id, score, COALESCE(comment, ''), created_on
	          FROM ratings WHERE ratee_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.RaterID, &rt.RateeID, &rt.RideID, &rt.Score, &rt.Comment, &rt.CreatedOn); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}
