package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"legal-agent-be/internal/dto"
	"legal-agent-be/internal/entity"
	"legal-agent-be/internal/repository/memory"
)

func newAuthFixture(t *testing.T, password string) (IAuthService, *memory.SessionRepository) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test_secret")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	sessions := memory.NewSessionRepository()
	return NewAuthService(string(hash), sessions), sessions
}

func TestLoginSuccess(t *testing.T) {
	svc, sessions := newAuthFixture(t, "hunter2")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "hunter2"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "legal", res.Mode)

	// The token references a live server-side session.
	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	sessionID, _ := claims["session_id"].(string)

	session, found := sessions.Get(sessionID)
	assert.True(t, found)
	assert.True(t, session.LoggedIn)
	assert.Equal(t, entity.ModeLegal, session.Mode)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, "hunter2")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "letmein"})
	assert.True(t, errors.Is(err, ErrInvalidPassword))
}

func TestSetModeAndGetMode(t *testing.T) {
	svc, sessions := newAuthFixture(t, "hunter2")
	sessions.Save(&entity.Session{ID: "sess-1", LoggedIn: true, Mode: entity.ModeLegal})

	err := svc.SetMode(context.Background(), "sess-1", entity.ModeCreator)
	assert.NoError(t, err)

	mode, err := svc.GetMode(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, entity.ModeCreator, mode)
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	svc, sessions := newAuthFixture(t, "hunter2")
	sessions.Save(&entity.Session{ID: "sess-1", LoggedIn: true, Mode: entity.ModeLegal})

	err := svc.SetMode(context.Background(), "sess-1", entity.Mode("paralegal"))
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestSetModeWithoutSession(t *testing.T) {
	svc, _ := newAuthFixture(t, "hunter2")

	err := svc.SetMode(context.Background(), "missing", entity.ModeCreator)
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestLogoutRemovesSession(t *testing.T) {
	svc, sessions := newAuthFixture(t, "hunter2")
	sessions.Save(&entity.Session{ID: "sess-1", LoggedIn: true, Mode: entity.ModeLegal})

	svc.Logout(context.Background(), "sess-1")

	_, found := sessions.Get("sess-1")
	assert.False(t, found)
}
