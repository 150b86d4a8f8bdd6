package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/domain/auth"
	"millstock/internal/domain/domaintest"
)

type memUserRepo struct {
	users map[id.ID]*auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[id.ID]*auth.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *auth.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID id.ID) (*auth.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *memUserRepo) Update(_ context.Context, u *auth.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperror.NewNotFound("user", u.ID)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, filter auth.UserFilter) ([]auth.User, int, error) {
	var out []auth.User
	for _, u := range r.users {
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *memUserRepo) Exists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func newService() (*auth.Service, *memUserRepo) {
	repo := newMemUserRepo()
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	svc := auth.NewService(repo, domaintest.TxManager{}, jwtService, auth.DefaultServiceConfig())
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, err := svc.Register(ctx, auth.RegisterRequest{
		Email:    "mill@example.com",
		Password: "correct-horse",
		Name:     "Mill Operator",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	token, logged, err := svc.Login(ctx, auth.Credentials{
		Email:    "mill@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.Token)
	assert.NotNil(t, logged.LastLoginAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{Email: "a@example.com", Password: "short"})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLoginUniformFailure(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	// Unknown email and wrong password return the same error, so
	// registered emails cannot be probed.
	_, _, errUnknown := svc.Login(ctx, auth.Credentials{Email: "nobody@example.com", Password: "x"})
	_, _, errWrongPw := svc.Login(ctx, auth.Credentials{Email: "a@example.com", Password: "wrong"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())

	appErr, ok := apperror.AsAppError(errWrongPw)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	cfg := auth.DefaultServiceConfig()
	for i := 0; i < cfg.MaxLoginAttempts; i++ {
		_, _, err = svc.Login(ctx, auth.Credentials{Email: "a@example.com", Password: "wrong"})
		require.Error(t, err)
	}

	// Even the correct password is rejected while locked.
	_, _, err = svc.Login(ctx, auth.Credentials{Email: "a@example.com", Password: "longenough"})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, err := svc.Register(ctx, auth.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, user.ID, false))

	_, _, err = svc.Login(ctx, auth.Credentials{Email: "a@example.com", Password: "longenough"})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user, err := svc.Register(ctx, auth.RegisterRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	// Wrong old password rejected.
	err = svc.ChangePassword(ctx, user.ID, "wrong", "evenlonger-secret")
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "longenough", "evenlonger-secret"))

	_, _, err = svc.Login(ctx, auth.Credentials{Email: "a@example.com", Password: "evenlonger-secret"})
	require.NoError(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))

	token, _, err := jwtService.GenerateAccessToken("user-1", "a@example.com", "operator", true)
	require.NoError(t, err)

	userCtx, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userCtx.UserID)
	assert.Equal(t, "a@example.com", userCtx.Email)
	assert.True(t, userCtx.IsAdmin)

	// Tampered token is rejected.
	_, err = jwtService.ValidateToken(token + "x")
	require.Error(t, err)
}
