package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (e *testEnv) newAuthService() AuthService {
	return NewAuthService(e.repo, e.config, zap.NewNop())
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := env.newAuthService()
	ctx := context.Background()

	signup, err := auth.Signup(ctx, "user1@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, signup.Token)
	assert.NotEmpty(t, signup.UserID)

	// Duplicate email is refused.
	_, err = auth.Signup(ctx, "user1@example.com", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	login, err := auth.Login(ctx, "user1@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, signup.UserID, login.UserID)
	assert.NotEqual(t, signup.Token, login.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := env.newAuthService()
	ctx := context.Background()

	_, err := auth.Signup(ctx, "user1@example.com", "password123")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "user1@example.com", "wrong-password")
	assert.Error(t, err)

	_, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.Error(t, err)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	auth := env.newAuthService()
	ctx := context.Background()

	signup, err := auth.Signup(ctx, "user1@example.com", "password123")
	require.NoError(t, err)

	session, ok := env.repo.Session.FindValidSession(signup.Token)
	require.True(t, ok)
	assert.Equal(t, signup.UserID, session.UserID)

	auth.Logout(ctx, signup.Token)
	_, ok = env.repo.Session.FindValidSession(signup.Token)
	assert.False(t, ok)
}
