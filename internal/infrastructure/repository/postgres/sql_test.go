package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows should be a not-found")
	}
	if !isNotFound(fmt.Errorf("get event: %w", sql.ErrNoRows)) {
		t.Fatal("wrapped sql.ErrNoRows should be a not-found")
	}
	if isNotFound(errors.New("pq: connection refused")) {
		t.Fatal("unrelated errors are not not-found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	if !isUniqueViolation(dup) {
		t.Fatal("23505 should be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert registration: %w", dup)) {
		t.Fatal("wrapped 23505 should be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign-key violations are not unique violations")
	}
	if isUniqueViolation(errors.New("duplicate key")) {
		t.Fatal("plain errors are not unique violations")
	}
}

func TestNullInt(t *testing.T) {
	if got := nullInt(sql.NullInt64{}); got != nil {
		t.Fatalf("null should map to nil, got %v", got)
	}
	got := nullInt(sql.NullInt64{Int64: 3, Valid: true})
	if got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}
