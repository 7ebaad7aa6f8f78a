package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/models"
)

func TestCreateUser_ActiveFromTheStart(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	env.users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, user models.User) (models.User, error) {
			assert.True(t, user.IsActive)
			assert.True(t, user.IsVerified)
			require.NotNil(t, user.ApprovedBy)
			assert.Equal(t, int64(1), *user.ApprovedBy)
			assert.Equal(t, models.RoleTechnician, user.Role)
			user.ID = 8
			return user, nil
		})

	rr := env.do(t, http.MethodPost, "/api/users", header, models.CreateUserRequest{
		Username: "tech",
		Email:    "tech@acme.test",
		Password: "Sup3r$ecret",
		Role:     models.RoleTechnician,
	})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "Sup3r$ecret")
}

func TestApproveUser_Success(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	approved := activeUser(5, models.RoleViewer)
	env.users.EXPECT().
		ApproveUser(gomock.Any(), int64(5), int64(1)).
		Return(approved, nil)

	rr := env.do(t, http.MethodPost, "/api/users/5/approve", header, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, user["is_verified"])
}

func TestApproveUser_AlreadyApprovedConflict(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	// Guard miss plus a verified re-read means the account was already
	// approved.
	env.users.EXPECT().
		ApproveUser(gomock.Any(), int64(5), int64(1)).
		Return(models.User{}, store.ErrUserNotFound)
	env.users.EXPECT().
		FindUserByID(gomock.Any(), int64(5)).
		Return(activeUser(5, models.RoleViewer), nil)

	rr := env.do(t, http.MethodPost, "/api/users/5/approve", header, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRejectUser_Success(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	env.users.EXPECT().DeleteUser(gomock.Any(), int64(5)).Return(nil)

	rr := env.do(t, http.MethodDelete, "/api/users/5/reject", header, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "rejected")
}

func TestDeactivateUser_SelfLockoutRefused(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	rr := env.do(t, http.MethodPost, "/api/users/1/deactivate", header, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeactivateUser_Success(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	deactivated := activeUser(5, models.RoleViewer)
	deactivated.IsActive = false
	env.users.EXPECT().
		SetUserActive(gomock.Any(), int64(5), false).
		Return(deactivated, nil)

	rr := env.do(t, http.MethodPost, "/api/users/5/deactivate", header, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, user["is_active"])
}

func TestReactivateUser_NeverApproved(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	pending := models.User{ID: 5, Username: "newbie", Role: models.RoleViewer}
	env.users.EXPECT().
		FindUserByID(gomock.Any(), int64(5)).
		Return(pending, nil)

	rr := env.do(t, http.MethodPost, "/api/users/5/reactivate", header, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUserLifecycle_BadIDParam(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	rr := env.do(t, http.MethodPost, "/api/users/zero/approve", header, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListPendingUsers_Success(t *testing.T) {
	env := newTestEnv(t)

	header := env.authHeaderFor(t, activeUser(1, models.RoleAdmin))

	env.users.EXPECT().
		ListPendingUsers(gomock.Any()).
		Return([]models.User{{ID: 5, Username: "newbie", Role: models.RoleViewer}}, nil)

	rr := env.do(t, http.MethodGet, "/api/users/pending", header, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "newbie")
}
