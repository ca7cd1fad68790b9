package service

import (
	"context"
	"testing"
	"time"

	"program_hub_backend/internal/config"
	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestEnv() *AuthService {
	gw := repository.NewGateway(repository.NewMemoryStore(), repository.NewMemorySnapshotCache())
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-for-unit-tests-only!"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(gw), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := authTestEnv()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Name: "李雷", Email: "lee@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Learner, user.Role, "注册默认为学员角色")
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	token, logged, err := svc.Login(ctx, LoginRequest{Email: "lee@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, "test-secret-key-for-unit-tests-only!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Learner, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := authTestEnv()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "甲", Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "乙", Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := authTestEnv()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "甲", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
