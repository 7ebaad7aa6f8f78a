package service

import (
	"context"
	"testing"

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

func newTestUserService(t *testing.T) (UserService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	hasher := crypto.NewPasswordHasher(bcrypt.MinCost)
	return NewUserService(users, hasher, logger.Nop()), users
}

func TestCreateUser_ActiveFromTheStart(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.True(t, user.IsActive)
			assert.True(t, user.IsVerified)
			require.NotNil(t, user.ApprovedBy)
			assert.Equal(t, int64(1), *user.ApprovedBy)
			require.NotNil(t, user.ApprovedAt)
			assert.Equal(t, models.RoleAdmin, user.Role)
			user.ID = 8
			return user, nil
		})

	user, err := svc.CreateUser(ctx, models.CreateUserRequest{
		Username: "admin2",
		Email:    "admin2@example.com",
		Password: "Str0ng!Pass",
		Role:     models.RoleAdmin,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(8), user.ID)
	assert.False(t, user.Pending())
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "Str0ng!Pass",
		Role:     "superuser",
	}, 1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestApproveUser_Success(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	approved := testUser()
	users.EXPECT().ApproveUser(ctx, int64(42), int64(1)).Return(approved, nil)

	user, err := svc.ApproveUser(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, approved.ID, user.ID)
}

func TestApproveUser_AlreadyApproved(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	// The guarded update misses, and the re-read shows a verified account.
	users.EXPECT().ApproveUser(ctx, int64(42), int64(1)).Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().FindUserByID(ctx, int64(42)).Return(testUser(), nil)

	_, err := svc.ApproveUser(ctx, 42, 1)
	require.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestApproveUser_NotFound(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	users.EXPECT().ApproveUser(ctx, int64(42), int64(1)).Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().FindUserByID(ctx, int64(42)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.ApproveUser(ctx, 42, 1)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestRejectUser_Success(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	users.EXPECT().DeleteUser(ctx, int64(42)).Return(nil)

	require.NoError(t, svc.RejectUser(ctx, 42))
}

func TestRejectUser_AlreadyApproved(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	users.EXPECT().DeleteUser(ctx, int64(42)).Return(store.ErrUserNotFound)
	users.EXPECT().FindUserByID(ctx, int64(42)).Return(testUser(), nil)

	err := svc.RejectUser(ctx, 42)
	require.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestDeactivateUser_Self(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.DeactivateUser(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrSelfDeactivation)
}

func TestDeactivateUser_Success(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	deactivated := testUser()
	deactivated.IsActive = false
	users.EXPECT().SetUserActive(ctx, int64(42), false).Return(deactivated, nil)

	user, err := svc.DeactivateUser(ctx, 42, 1)
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestDeactivateUser_AlreadyInactive(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	inactive := testUser()
	inactive.IsActive = false
	users.EXPECT().SetUserActive(ctx, int64(42), false).Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().FindUserByID(ctx, int64(42)).Return(inactive, nil)

	_, err := svc.DeactivateUser(ctx, 42, 1)
	require.ErrorIs(t, err, ErrAlreadyInactive)
}

func TestReactivateUser_Success(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	inactive := testUser()
	inactive.IsActive = false
	users.EXPECT().FindUserByID(ctx, int64(42)).Return(inactive, nil)

	active := testUser()
	users.EXPECT().SetUserActive(ctx, int64(42), true).Return(active, nil)

	user, err := svc.ReactivateUser(ctx, 42)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
}

func TestReactivateUser_NeverApproved(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	pending := testUser()
	pending.IsVerified = false
	pending.IsActive = false
	users.EXPECT().FindUserByID(ctx, int64(42)).Return(pending, nil)

	_, err := svc.ReactivateUser(ctx, 42)
	require.ErrorIs(t, err, ErrNotYetApproved)
}

func TestReactivateUser_AlreadyActive(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(42)).Return(testUser(), nil)

	_, err := svc.ReactivateUser(ctx, 42)
	require.ErrorIs(t, err, ErrAlreadyActive)
}

func TestListUsers_Delegates(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	users.EXPECT().ListUsers(ctx).Return([]models.User{testUser()}, nil)
	all, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	pending := testUser()
	pending.IsVerified = false
	users.EXPECT().ListPendingUsers(ctx).Return([]models.User{pending}, nil)
	waiting, err := svc.ListPendingUsers(ctx)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.True(t, waiting[0].Pending())
}
