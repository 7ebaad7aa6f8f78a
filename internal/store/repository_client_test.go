package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/models"
)

func newTestClientRepo(t *testing.T) (*clientRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &clientRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func clientRowColumns() []string {
	return []string{
		"id", "name", "company_name", "description", "email", "phone", "address",
		"is_active", "created_by", "created_at", "updated_at", "created_by_username",
	}
}

func TestCreateClient_RefetchesJoinedRow(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	ctx := context.Background()
	creator := int64(1)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO clients").
		WithArgs("Acme", "Acme Corp", "", "ops@acme.test", "", "", &creator).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	mock.ExpectQuery("SELECT c.id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.
			NewRows(clientRowColumns()).
			AddRow(7, "Acme", "Acme Corp", "", "ops@acme.test", "", "",
				true, creator, now, now, "admin"))

	client, err := repo.CreateClient(ctx, models.Client{
		Name:        "Acme",
		CompanyName: "Acme Corp",
		Email:       "ops@acme.test",
		CreatedBy:   &creator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.ID != 7 {
		t.Errorf("expected ID=7, got %d", client.ID)
	}
	if client.CreatedByUsername != "admin" {
		t.Errorf("expected joined creator username, got %q", client.CreatedByUsername)
	}
}

func TestGetClientByID_SoftDeletedIsInvisible(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT c.id").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetClientByID(ctx, 7)
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestListClients_Success(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT c.id").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.
			NewRows(clientRowColumns()).
			AddRow(2, "Beta", "", "", "", "", "", true, nil, now, now, "").
			AddRow(1, "Acme", "", "", "", "", "", true, nil, now, now, ""))

	clients, err := repo.ListClients(ctx, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[0].Name != "Beta" {
		t.Errorf("expected newest client first, got %q", clients[0].Name)
	}
}

func TestCountClients_Success(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.CountClients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 42 {
		t.Errorf("expected 42, got %d", total)
	}
}

func TestUpdateClient_EmptyPatch(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	_, err := repo.UpdateClient(context.Background(), 7, models.UpdateClientRequest{})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no query should have been issued: %v", err)
	}
}

func TestUpdateClient_PartialSetAndRefetch(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	name := "Acme Renamed"
	phone := ""

	mock.ExpectExec("UPDATE clients").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT c.id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.
			NewRows(clientRowColumns()).
			AddRow(7, name, "", "", "", "", "", true, nil, now, now, ""))

	client, err := repo.UpdateClient(ctx, 7, models.UpdateClientRequest{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name != name {
		t.Errorf("expected updated name, got %q", client.Name)
	}
}

func TestUpdateClient_ZeroRowsYieldsNotFound(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	name := "Gone"

	mock.ExpectExec("UPDATE clients").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateClient(context.Background(), 404, models.UpdateClientRequest{Name: &name})
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestSoftDeleteClient_ZeroRowsYieldsNotFound(t *testing.T) {
	repo, mock, db := newTestClientRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE clients").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDeleteClient(context.Background(), 404)
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
