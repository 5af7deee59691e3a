package service

import (
	"context"
	"testing"

	"leadbook/internal/config"
	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
	}
}

func addAccount(t *testing.T, repo *stubUserRepo, username, password string, bulk bool) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := model.User{
		ID:            uuid.New(),
		Username:      username,
		PasswordHash:  string(hash),
		Role:          model.RoleUser,
		Branch:        "east",
		CanBulkIngest: bulk,
	}
	repo.users[u.ID] = u
	return u
}

func TestLoginSuccessIssuesClaims(t *testing.T) {
	repo := newStubUserRepo()
	addAccount(t, repo, "sam", "secret1", true)
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: " SAM ", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "sam", resp.User.Username)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "sam", claims["username"])
	assert.Equal(t, model.RoleUser, claims["role"])
	assert.Equal(t, "east", claims["user_branch"])
	assert.Equal(t, true, claims["can_bulk_ingest"])
}

func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newStubUserRepo()
	addAccount(t, repo, "sam", "secret1", false)
	svc := NewAuthService(repo, testConfig())
	ctx := context.Background()

	// Unknown user and bad password produce the same message.
	_, errUnknown := svc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})
	_, errBadPass := svc.Login(ctx, dto.LoginRequest{Username: "sam", Password: "wrong"})

	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(errUnknown))
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(errBadPass))
	assert.Equal(t, errUnknown.Error(), errBadPass.Error())
}

func TestRefreshRereadsAccount(t *testing.T) {
	repo := newStubUserRepo()
	u := addAccount(t, repo, "sam", "secret1", false)
	svc := NewAuthService(repo, testConfig())
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "sam", Password: "secret1"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "sam", fresh.User.Username)

	// A deleted account cannot refresh.
	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))

	// Garbage tokens are rejected outright.
	_, err = svc.Refresh(ctx, "not-a-token")
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
}
