package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/domain"
	"batdongsan-api/internal/repo"
	"batdongsan-api/internal/testutil"
)

func newUserService(t *testing.T) (*UserService, domain.UserRepository, *auth.JWTer) {
	t.Helper()
	db := testutil.OpenDB(t)
	users := repo.NewUserRepo(db)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 24 * time.Hour}
	return NewUserService(users, jwter, zap.NewNop()), users, jwter
}

func TestRegister(t *testing.T) {
	svc, _, jwter := newUserService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		Name: "Anh", Email: "Anh@Example.com", Password: "pw123456", PhoneNumber: "0905123456",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, u.Role)
	assert.Equal(t, "anh@example.com", u.Email)
	assert.NotEqual(t, "pw123456", u.PasswordHash)

	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
	assert.Equal(t, domain.RoleClient, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Name: "A", Email: "dup@example.com", Password: "pw", PhoneNumber: "0905000001",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{
		Name: "B", Email: "dup@example.com", Password: "pw2", PhoneNumber: "0905000002",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestChangePasswordWrongOldLeavesHash(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Name: "A", Email: "cp@example.com", Password: "original", PhoneNumber: "0905000003",
	})
	require.NoError(t, err)
	before, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "not-the-old-one", "newpass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	after, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	// Still able to log in with the original password.
	_, _, err = svc.Login(ctx, "cp@example.com", "original")
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Name: "A", Email: "cp2@example.com", Password: "original", PhoneNumber: "0905000004",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "original", "updated"))

	_, _, err = svc.Login(ctx, "cp2@example.com", "original")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "cp2@example.com", "updated")
	assert.NoError(t, err)
}

func TestVerifyEmail(t *testing.T) {
	svc, users, jwter := newUserService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Name: "A", Email: "ve@example.com", Password: "pw", PhoneNumber: "0905000005",
	})
	require.NoError(t, err)
	assert.Empty(t, u.EmailVerified)

	vtok, err := jwter.IssueEmailVerification(u.ID)
	require.NoError(t, err)

	verified, err := svc.VerifyEmail(ctx, vtok)
	require.NoError(t, err)
	assert.NotEmpty(t, verified.EmailVerified)

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.EmailVerified)
}

func TestVerifyEmailRejectsAccessToken(t *testing.T) {
	svc, _, jwter := newUserService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Name: "A", Email: "ve2@example.com", Password: "pw", PhoneNumber: "0905000006",
	})
	require.NoError(t, err)

	atok, err := jwter.Issue(u.ID, u.Role)
	require.NoError(t, err)

	_, err = svc.VerifyEmail(ctx, atok)
	assert.ErrorIs(t, err, ErrBadVerifyToken)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
