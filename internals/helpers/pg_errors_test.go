package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := fmt.Errorf("insert peserta: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(err) {
		t.Fatal("pgconn 23505 harus terdeteksi meski terbungkus")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("kode selain 23505 bukan unique violation")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	if !IsUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatal("pq 23505 harus terdeteksi")
	}
}

func TestIsUniqueViolationOther(t *testing.T) {
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatal("error biasa tidak boleh dianggap unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil bukan unique violation")
	}
}
