package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MhiretKiros/TTMS-sub002/internal/config"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *config.Config) {
	t.Helper()
	userRepo := newFakeUserRepo()
	cfg := &config.Config{JWT: &config.JWTConfig{Secret: "test-secret"}}
	return NewAuthService(userRepo, cfg, testLogger()), userRepo, cfg
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _, cfg := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.User{
		Username: "abebe",
		FullName: "Abebe Kebede",
		Role:     models.RoleDriver,
	}, "super-secret-pw")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.NotEqual(t, "super-secret-pw", user.Password, "password must be stored hashed")

	loggedIn, tokens, err := svc.Login(ctx, "abebe", "super-secret-pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, tokens)
	assert.Equal(t, "Bearer", tokens.TokenType)

	claims, err := utils.ValidateToken(tokens.AccessToken, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "abebe", claims.Username)
	assert.Equal(t, string(models.RoleDriver), claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.User{Username: "abebe", Role: models.RoleDriver}, "super-secret-pw")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "abebe", "wrong-password")
	assert.EqualError(t, err, utils.ErrInvalidCredentials)

	// Unknown users get the same error as a bad password.
	_, _, err = svc.Login(ctx, "nobody", "super-secret-pw")
	assert.EqualError(t, err, utils.ErrInvalidCredentials)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.User{Username: "x", Role: "janitor"}, "super-secret-pw")
	assert.ErrorContains(t, err, "invalid role")

	_, err = svc.Register(ctx, &models.User{Username: "x", Role: models.RoleDriver}, "short")
	assert.ErrorContains(t, err, "at least")
}

func TestAuthRegisterRejectsAdminRole(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	// Open registration must not be able to mint an account that bypasses
	// every role gate.
	_, err := svc.Register(context.Background(), &models.User{
		Username: "mallory",
		FullName: "Mallory",
		Role:     models.RoleAdmin,
	}, "super-secret-pw")
	assert.ErrorIs(t, err, workflow.ErrPermissionDenied)
	_, err = userRepo.GetByUsername(context.Background(), "mallory")
	assert.Error(t, err)
}

func TestAuthRefreshToken(t *testing.T) {
	svc, _, cfg := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.User{Username: "abebe", Role: models.RoleDriver}, "super-secret-pw")
	require.NoError(t, err)
	_, tokens, err := svc.Login(ctx, "abebe", "super-secret-pw")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := utils.ValidateToken(refreshed.AccessToken, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, "abebe", claims.Username)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestAuthUserManagement(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	ctx := context.Background()

	abebe, err := svc.Register(ctx, &models.User{Username: "abebe", Role: models.RoleMechanic}, "super-secret-pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, &models.User{Username: "sara", Role: models.RoleDriver}, "super-secret-pw")
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, svc.UpdateUserRole(ctx, abebe.ID.Hex(), models.RoleHeadMechanic))
	promoted, err := userRepo.GetByID(ctx, abebe.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleHeadMechanic, promoted.Role)

	err = svc.UpdateUserRole(ctx, abebe.ID.Hex(), "janitor")
	assert.ErrorContains(t, err, "invalid role")
	err = svc.UpdateUserRole(ctx, "not-a-hex-id", models.RoleDriver)
	assert.ErrorContains(t, err, "invalid user id")

	require.NoError(t, svc.DeleteUser(ctx, abebe.ID.Hex()))
	_, err = userRepo.GetByID(ctx, abebe.ID)
	assert.ErrorContains(t, err, "not found")

	err = svc.DeleteUser(ctx, "not-a-hex-id")
	assert.ErrorContains(t, err, "invalid user id")
}
