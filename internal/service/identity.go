package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/repository"
	"carpool-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type identityService struct {
	memberRepo repository.MemberRepository
	tokens     security.TokenManager
}

func NewIdentityService(memberRepo repository.MemberRepository, tokens security.TokenManager) IdentityService {
	return &identityService{
		memberRepo: memberRepo,
		tokens:     tokens,
	}
}

func (s *identityService) Register(ctx context.Context, name, email, phone, password string, campus domain.Campus) (*domain.Member, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if !domain.ValidCampus(campus) {
		return nil, fmt.Errorf("%w: unknown campus %q", domain.ErrValidation, campus)
	}

	if _, err := s.memberRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Campus:       campus,
		PasswordHash: string(hash),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *identityService) Login(ctx context.Context, email, password string) (string, string, error) {
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if !s.VerifyCredential(ctx, member, password) {
		return "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(member.ID, member.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(member.ID, member.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *identityService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	access, err := s.tokens.GenerateAccessToken(claims.MemberID, claims.Email)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(claims.MemberID, claims.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

func (s *identityService) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return s.memberRepo.GetByEmail(ctx, email)
}

func (s *identityService) VerifyCredential(ctx context.Context, member *domain.Member, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(secret)) == nil
}

func (s *identityService) GetProfile(ctx context.Context, memberID int32) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, memberID)
}

func (s *identityService) UpdateProfile(ctx context.Context, memberID int32, name, phone string, campus domain.Campus) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		member.Name = name
	}
	if phone != "" {
		member.Phone = phone
	}
	if campus != "" {
		if !domain.ValidCampus(campus) {
			return nil, fmt.Errorf("%w: unknown campus %q", domain.ErrValidation, campus)
		}
		member.Campus = campus
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
