package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRowColumns() []string {
	return []string{
		"id", "username", "email", "password_hash", "full_name", "role",
		"is_active", "is_verified", "approved_by", "approved_at", "created_at", "updated_at",
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:     "jdoe",
		Email:        "jdoe@acme.test",
		PasswordHash: "$2a$10$hash",
		FullName:     "John Doe",
		Role:         models.RoleViewer,
	}

	now := time.Now()
	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(1, user.Username, user.Email, user.PasswordHash, user.FullName, string(user.Role),
			false, false, nil, nil, now, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Email, user.PasswordHash, user.FullName, user.Role,
			false, false, nil, nil).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{Username: "jdoe"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, models.User{Username: "jdoe"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(3, "jdoe", "jdoe@acme.test", "hash", "John Doe", "technician",
			true, true, int64(1), now, now, now)

	mock.ExpectQuery("SELECT id").
		WithArgs("jdoe@acme.test").
		WillReturnRows(rows)

	found, err := repo.FindUserByEmail(ctx, "jdoe@acme.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != 3 || found.Role != models.RoleTechnician {
		t.Errorf("unexpected user scanned: %+v", found)
	}
	if found.ApprovedBy == nil || *found.ApprovedBy != 1 {
		t.Errorf("expected approved_by=1, got %v", found.ApprovedBy)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id").
		WithArgs("ghost@acme.test").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "ghost@acme.test")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1) // wrong shape

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	_, err := repo.FindUserByID(ctx, 1)
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestListPendingUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(5, "newbie", "newbie@acme.test", "hash", "", "viewer",
			false, false, nil, nil, now, now).
		AddRow(6, "other", "other@acme.test", "hash", "", "viewer",
			false, false, nil, nil, now, now)

	mock.ExpectQuery("SELECT id").
		WillReturnRows(rows)

	users, err := repo.ListPendingUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].IsVerified || users[0].IsActive {
		t.Errorf("pending user scanned with wrong flags: %+v", users[0])
	}
}

func TestApproveUser_AlreadyVerifiedYieldsNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	// The conditional UPDATE matches no row when is_verified is already true.
	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(1), int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ApproveUser(ctx, 5, 1)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestApproveUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(5, "newbie", "newbie@acme.test", "hash", "", "viewer",
			true, true, int64(1), now, now, now)

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(1), int64(5)).
		WillReturnRows(rows)

	user, err := repo.ApproveUser(ctx, 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsActive || !user.IsVerified {
		t.Errorf("approved user should be active and verified: %+v", user)
	}
}

func TestDeleteUser_NotPending(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(ctx, 9)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(ctx, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetUserActive_NoChangeYieldsNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	// Guard "is_active <> $2" matches nothing when the flag already holds.
	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(4), false).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SetUserActive(ctx, 4, false)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
