package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/logger"
	"carpool-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO notifications (member_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	n.CreatedOn = time.Now()
	err = r.db.QueryRowContext(ctx, query, n.MemberID, n.Title, n.Message, n.IsRead, attrs, n.CreatedOn).Scan(&n.ID)
	if err != nil {
		logger.Error("Failed to create notification", "member_id", n.MemberID, "error", err)
	}
	return err
}

func (r *notificationRepository) List(ctx context.Context, memberID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE member_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, memberID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, member_id, title, message, is_read, attributes, created_on
	          FROM notifications WHERE member_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, memberID int32) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND member_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, memberID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
