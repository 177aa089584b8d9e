package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stitchpoint/orderdesk/internal/config"
	"github.com/stitchpoint/orderdesk/internal/middleware"
)

// ErrInvalidCredentials is returned for a bad email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService issues JWTs against the single configured admin credential.
// There is no user table; identity management is out of scope.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates an auth service.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
}

// Login checks the credential pair and issues an access token.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	auth := s.cfg.Auth
	if auth.AdminEmail == "" || email != auth.AdminEmail || password != auth.AdminPassword {
		return nil, ErrInvalidCredentials
	}

	userID := "admin-" + uuid.New().String()[:8]
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWT.AccessTokenExpire)

	claims := middleware.JWTClaims{
		UserID: userID,
		Name:   auth.AdminName,
		Email:  auth.AdminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		UserID:      userID,
		Name:        auth.AdminName,
		Email:       auth.AdminEmail,
	}, nil
}
