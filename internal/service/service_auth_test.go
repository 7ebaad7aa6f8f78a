package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfedotov/credvault/internal/crypto"
	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/mock"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/models"
)

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	hasher := crypto.NewPasswordHasher(bcrypt.MinCost)
	tokens := newTestTokenService(time.Now())
	return NewAuthService(users, hasher, tokens, logger.Nop()), users
}

func TestRegister_CreatesPendingAccount(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "jdoe", user.Username)
			assert.Equal(t, "jdoe@example.com", user.Email)
			assert.Equal(t, models.RoleTechnician, user.Role)
			assert.False(t, user.IsActive, "self-registered account must start inactive")
			assert.False(t, user.IsVerified, "self-registered account must start unverified")
			assert.NotEqual(t, "Str0ng!Pass", user.PasswordHash, "password must be hashed")
			assert.NotEmpty(t, user.PasswordHash)
			user.ID = 7
			return user, nil
		})

	user, err := svc.Register(ctx, models.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Str0ng!Pass",
		FullName: "John Doe",
		Role:     models.RoleTechnician,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.Pending())
}

func TestRegister_DefaultsToViewer(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, models.RoleViewer, user.Role)
			return user, nil
		})

	_, err := svc.Register(ctx, models.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Str0ng!Pass",
	})
	require.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	valid := models.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Str0ng!Pass",
	}

	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
	}{
		{name: "empty username", mutate: func(r *models.RegisterRequest) { r.Username = "" }},
		{name: "short username", mutate: func(r *models.RegisterRequest) { r.Username = "ab" }},
		{name: "empty email", mutate: func(r *models.RegisterRequest) { r.Email = "" }},
		{name: "malformed email", mutate: func(r *models.RegisterRequest) { r.Email = "not-an-email" }},
		{name: "empty password", mutate: func(r *models.RegisterRequest) { r.Password = "" }},
		{name: "short password", mutate: func(r *models.RegisterRequest) { r.Password = "S1!a" }},
		{name: "no uppercase", mutate: func(r *models.RegisterRequest) { r.Password = "weakpass1!" }},
		{name: "no digit", mutate: func(r *models.RegisterRequest) { r.Password = "Weakpass!" }},
		{name: "no special", mutate: func(r *models.RegisterRequest) { r.Password = "Weakpass1" }},
		{name: "admin not self-assignable", mutate: func(r *models.RegisterRequest) { r.Role = models.RoleAdmin }},
		{name: "unknown role", mutate: func(r *models.RegisterRequest) { r.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Register(ctx, req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_DuplicateUser(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrDuplicateUser)

	_, err := svc.Register(ctx, models.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Str0ng!Pass",
	})
	require.ErrorIs(t, err, store.ErrDuplicateUser)
}

func loginReadyUser(t *testing.T) (models.User, string) {
	t.Helper()
	hasher := crypto.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("Str0ng!Pass")
	require.NoError(t, err)

	user := testUser()
	user.PasswordHash = hash
	return user, "Str0ng!Pass"
}

func TestLogin_Success(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	user, password := loginReadyUser(t)
	users.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil)

	loggedIn, token, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: password})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, user.ID, token.Claims.UserID)
	assert.Equal(t, user.Role, token.Claims.Role)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().
		FindUserByEmail(ctx, "nobody@example.com").
		Return(models.User{}, store.ErrUserNotFound)

	_, _, err := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	user, _ := loginReadyUser(t)
	users.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil)

	_, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: "Wrong!Pass1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_PendingAndInactiveAccounts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.User)
	}{
		{name: "pending approval", mutate: func(u *models.User) { u.IsVerified = false; u.IsActive = false }},
		{name: "deactivated", mutate: func(u *models.User) { u.IsActive = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestAuthService(t)
			ctx := context.Background()

			user, password := loginReadyUser(t)
			tt.mutate(&user)
			users.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil)

			_, _, err := svc.Login(ctx, models.LoginRequest{Email: user.Email, Password: password})
			require.ErrorIs(t, err, ErrAccountInactive)
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, models.LoginRequest{Email: "", Password: "x"})
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "a@b.c", Password: ""})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetUser_Delegates(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(42)).Return(testUser(), nil)

	user, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)

	users.EXPECT().FindUserByID(ctx, int64(99)).Return(models.User{}, store.ErrUserNotFound)
	_, err = svc.GetUser(ctx, 99)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}
