package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGUserStoreCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPGUserStore(db)

	mock.ExpectExec("insert into users").
		WithArgs("u1", "alice", "hash", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.Create(context.Background(), &User{ID: "u1", Username: "alice", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGUserStoreCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPGUserStore(db)

	mock.ExpectExec("insert into users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"})

	err = store.Create(context.Background(), &User{ID: "u1", Username: "alice", PasswordHash: "hash"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPGUserStoreFindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPGUserStore(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin", "created_at", "updated_at"}).
		AddRow("u1", "alice", "hash", true, now, now)
	mock.ExpectQuery("select id, username, password_hash, is_admin, created_at, updated_at from users where username").
		WithArgs("alice").
		WillReturnRows(rows)

	u, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if u.ID != "u1" || !u.IsAdmin {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestPGUserStoreFindNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPGUserStore(db)

	mock.ExpectQuery("select id, username, password_hash, is_admin, created_at, updated_at from users where id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin", "created_at", "updated_at"}))

	if _, err := store.Find(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGUserStoreUpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPGUserStore(db)

	mock.ExpectExec("update users set password_hash").
		WithArgs("u1", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.UpdatePassword(context.Background(), "u1", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
}

func TestPGUserStoreUpdatePasswordMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPGUserStore(db)

	mock.ExpectExec("update users set password_hash").
		WithArgs("missing", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.UpdatePassword(context.Background(), "missing", "new-hash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
