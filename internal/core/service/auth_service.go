package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workmania/timetrack/internal/core/domain"
	"github.com/workmania/timetrack/internal/core/ports"
)

// AuthService resolves internal employee codes to accounts and issues the
// signed session tokens carried in the session cookie. The employee code is
// an identifier, not a secret: login is a directory lookup, not a challenge.
type AuthService struct {
	users    ports.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users ports.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * 24 * time.Hour
	}
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, employeeID string) (string, *domain.User, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return "", nil, domain.ErrInvalidSession
	}

	user, err := s.users.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Register(ctx context.Context, employeeID string) (*domain.User, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, domain.ErrInvalidSession
	}

	return s.users.Create(ctx, &domain.User{
		EmployeeID: employeeID,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID,
		"employee_id": user.EmployeeID,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
