package service_test

import (
	"context"
	"testing"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/security"
	"carpool-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newIdentityFixture(t *testing.T) (*MockMemberRepo, security.TokenManager, service.IdentityService) {
	t.Helper()
	memberRepo := new(MockMemberRepo)
	tokens := security.NewTokenManager("test-secret-key-at-least-32-chars!", 15, 7*24*60)
	svc := service.NewIdentityService(memberRepo, tokens)
	return memberRepo, tokens, svc
}

func TestIdentityService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		memberRepo, _, svc := newIdentityFixture(t)
		memberRepo.On("GetByEmail", ctx, "ana@campus.edu").Return(nil, domain.ErrNotFound)
		memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Return(nil)

		member, err := svc.Register(ctx, "Ana", "Ana@Campus.edu", "5511999990000", "hunter2hunter2", domain.CampusMain)
		assert.NoError(t, err)
		assert.Equal(t, "ana@campus.edu", member.Email)
		assert.NotEqual(t, "hunter2hunter2", member.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		memberRepo, _, svc := newIdentityFixture(t)
		memberRepo.On("GetByEmail", ctx, "ana@campus.edu").Return(&domain.Member{ID: 1, Email: "ana@campus.edu"}, nil)

		_, err := svc.Register(ctx, "Ana", "ana@campus.edu", "", "hunter2hunter2", domain.CampusMain)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, _, svc := newIdentityFixture(t)
		_, err := svc.Register(ctx, "Ana", "ana@campus.edu", "", "short", domain.CampusMain)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UnknownCampus", func(t *testing.T) {
		_, _, svc := newIdentityFixture(t)
		_, err := svc.Register(ctx, "Ana", "ana@campus.edu", "", "hunter2hunter2", domain.Campus("MOON"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestIdentityService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)
	stored := &domain.Member{ID: 1, Email: "ana@campus.edu", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		memberRepo, tokens, svc := newIdentityFixture(t)
		memberRepo.On("GetByEmail", ctx, "ana@campus.edu").Return(stored, nil)

		access, refresh, err := svc.Login(ctx, "ana@campus.edu", "hunter2hunter2")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), claims.MemberID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		memberRepo, _, svc := newIdentityFixture(t)
		memberRepo.On("GetByEmail", ctx, "ana@campus.edu").Return(stored, nil)

		_, _, err := svc.Login(ctx, "ana@campus.edu", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		memberRepo, _, svc := newIdentityFixture(t)
		memberRepo.On("GetByEmail", ctx, "nobody@campus.edu").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@campus.edu", "hunter2hunter2")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestIdentityService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		_, tokens, svc := newIdentityFixture(t)
		refresh, err := tokens.GenerateRefreshToken(1, "ana@campus.edu")
		assert.NoError(t, err)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		_, tokens, svc := newIdentityFixture(t)
		access, err := tokens.GenerateAccessToken(1, "ana@campus.edu")
		assert.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}

func TestIdentityService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		memberRepo, _, svc := newIdentityFixture(t)
		stored := &domain.Member{ID: 1, Name: "Ana", Email: "ana@campus.edu", Phone: "111", Campus: domain.CampusMain}
		memberRepo.On("GetByID", ctx, int32(1)).Return(stored, nil)
		memberRepo.On("Update", ctx, mock.AnythingOfType("*domain.Member")).Return(nil)

		member, err := svc.UpdateProfile(ctx, 1, "", "5511999990000", domain.CampusNorth)
		assert.NoError(t, err)
		assert.Equal(t, "Ana", member.Name)
		assert.Equal(t, "5511999990000", member.Phone)
		assert.Equal(t, domain.CampusNorth, member.Campus)
	})

	t.Run("UnknownCampus", func(t *testing.T) {
		memberRepo, _, svc := newIdentityFixture(t)
		memberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Member{ID: 1, Campus: domain.CampusMain}, nil)

		_, err := svc.UpdateProfile(ctx, 1, "", "", domain.Campus("MOON"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
