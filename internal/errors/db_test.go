package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_Nil(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Error("MapDBError(nil) should return nil")
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("expected not_found, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   pgerrcode.UniqueViolation,
		Detail: `Key (email)=(user@example.com) already exists.`,
	}

	err := MapDBError(pgErr)
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", GetCode(err))
	}
	if GetField(err) != "email" {
		t.Errorf("Field = %q, want email", GetField(err))
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	if got := GetCode(MapDBError(context.DeadlineExceeded)); got != ErrCodeTimeout {
		t.Errorf("deadline exceeded mapped to %v, want timeout", got)
	}
	if got := GetCode(MapDBError(context.Canceled)); got != ErrCodeCanceled {
		t.Errorf("canceled mapped to %v, want canceled", got)
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}

	err := MapDBError(pgErr)
	if !IsInternal(err) {
		t.Errorf("expected internal, got %v", GetCode(err))
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	plain := errors.New("not a database error")
	if got := MapDBError(plain); !errors.Is(got, plain) {
		t.Errorf("expected original error back, got %v", got)
	}
}
