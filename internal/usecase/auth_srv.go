package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns signup and login. The rest of the system only ever sees
// the verified user ID the session middleware resolves.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*response.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string)
}

type authService struct {
	repo          *repository.Repository
	sessionExpiry time.Duration
	log           *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:          repo,
		sessionExpiry: time.Duration(config.Session.ExpiryHours) * time.Hour,
		log:           log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, email, password string) (*response.AuthResponse, error) {
	if _, ok := s.repo.User.FindByEmail(email); ok {
		return nil, fmt.Errorf("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		UserID:       utils.GenerateUUIDString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	s.repo.User.Save(user)

	s.log.Info("User registered", zap.String("user_id", user.UserID))
	return s.openSession(user.UserID), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*response.AuthResponse, error) {
	user, ok := s.repo.User.FindByEmail(email)
	if !ok {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	s.log.Info("User logged in", zap.String("user_id", user.UserID))
	return s.openSession(user.UserID), nil
}

func (s *authService) Logout(ctx context.Context, token string) {
	s.repo.Session.Delete(token)
}

func (s *authService) openSession(userID string) *response.AuthResponse {
	session := &entity.Session{
		Token:     utils.GenerateSessionToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionExpiry),
	}
	s.repo.Session.Save(session)

	return &response.AuthResponse{Token: session.Token, UserID: userID}
}
