package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (name, email, phone, campus, password_hash, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	m.Email = strings.ToLower(m.Email)
	m.CreatedOn = now
	m.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, m.Name, m.Email, m.Phone, m.Campus, m.PasswordHash, m.CreatedOn, m.UpdatedOn).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, name, email, COALESCE(phone, ''), campus, password_hash, created_on, updated_on FROM members WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Campus, &m.PasswordHash, &m.CreatedOn, &m.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, name, email, COALESCE(phone, ''), campus, password_hash, created_on, updated_on FROM members WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Campus, &m.PasswordHash, &m.CreatedOn, &m.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET name=$1, phone=$2, campus=$3, updated_on=$4 WHERE id=$5`
	m.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, m.Name, m.Phone, m.Campus, m.UpdatedOn, m.ID)
	return err
}
