// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"legal-agent-be/internal/dto"
	"legal-agent-be/internal/entity"
	"legal-agent-be/internal/repository/memory"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoSession       = errors.New("session not found")
	ErrInvalidMode     = errors.New("mode must be 'legal' or 'creator'")
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string)
	SetMode(ctx context.Context, sessionID string, mode entity.Mode) error
	GetMode(ctx context.Context, sessionID string) (entity.Mode, error)
}

type authService struct {
	passwordHash string
	sessions     *memory.SessionRepository
}

func NewAuthService(passwordHash string, sessions *memory.SessionRepository) IAuthService {
	return &authService{
		passwordHash: passwordHash,
		sessions:     sessions,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	session := &entity.Session{
		ID:       uuid.NewString(),
		LoggedIn: true,
		Mode:     entity.ModeLegal, // default mode until switched
	}
	s.sessions.Save(session)

	claims := jwt.MapClaims{
		"session_id": session.ID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Mode:  string(session.Mode),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

func (s *authService) SetMode(ctx context.Context, sessionID string, mode entity.Mode) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}
	session, found := s.sessions.Get(sessionID)
	if !found {
		return ErrNoSession
	}
	session.Mode = mode
	s.sessions.Save(session)
	return nil
}

func (s *authService) GetMode(ctx context.Context, sessionID string) (entity.Mode, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return "", ErrNoSession
	}
	return session.Mode, nil
}
