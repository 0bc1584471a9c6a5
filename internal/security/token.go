package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// MemberClaims defines the standard claims for our application
type MemberClaims struct {
	MemberID int32     `json:"member_id"`
	Email    string    `json:"email,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(memberID int32, email string) (string, error)
	GenerateRefreshToken(memberID int32, email string) (string, error)
	ValidateToken(tokenString string) (*MemberClaims, error)
}

type tokenManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiryMinutes, refreshExpiryMinutes int) TokenManager {
	return &tokenManager{
		secret:        []byte(secret),
		accessExpiry:  time.Duration(accessExpiryMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshExpiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) GenerateAccessToken(memberID int32, email string) (string, error) {
	return m.generate(memberID, email, TokenTypeAccess, m.accessExpiry)
}

func (m *tokenManager) GenerateRefreshToken(memberID int32, email string) (string, error) {
	return m.generate(memberID, email, TokenTypeRefresh, m.refreshExpiry)
}

func (m *tokenManager) generate(memberID int32, email string, typ TokenType, expiry time.Duration) (string, error) {
	claims := MemberClaims{
		MemberID: memberID,
		Email:    email,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(memberID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "carpool-backend",
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*MemberClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &MemberClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*MemberClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
