// Package storagetest поднимает in-memory sqlite со схемой сервиса для тестов репозиториев.
package storagetest

import (
	"database/sql"
	"testing"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/psqlbuilder"
)

// Schema схема, совместимая с sqlite. Повторяет миграции postgres по колонкам
const Schema = `
CREATE TABLE users (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    email      TEXT NOT NULL UNIQUE,
    full_name  TEXT,
    role       TEXT NOT NULL DEFAULT 'patient',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE providers (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id          INTEGER NOT NULL,
    full_name        TEXT NOT NULL,
    email            TEXT NOT NULL,
    specialty        TEXT NOT NULL,
    consultation_fee INTEGER NOT NULL,
    is_approved      BOOLEAN NOT NULL DEFAULT 0,
    created_at       TIMESTAMP NOT NULL,
    updated_at       TIMESTAMP NOT NULL
);

CREATE TABLE provider_schedules (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    provider_id INTEGER NOT NULL,
    day_of_week INTEGER NOT NULL,
    start_time  TEXT NOT NULL,
    end_time    TEXT NOT NULL,
    is_active   BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE reservations (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    patient_id        INTEGER NOT NULL,
    provider_id       INTEGER NOT NULL,
    booking_date      TEXT NOT NULL,
    start_time        TEXT NOT NULL,
    consultation_fee  INTEGER NOT NULL,
    booking_fee       INTEGER NOT NULL,
    total_amount      INTEGER NOT NULL,
    status            TEXT NOT NULL DEFAULT 'pending',
    payment_status    TEXT NOT NULL DEFAULT 'pending',
    notes             TEXT,
    payment_reference TEXT,
    created_at        TIMESTAMP NOT NULL,
    updated_at        TIMESTAMP NOT NULL
);

CREATE TABLE provider_enrollments (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    idempotency_key  TEXT NOT NULL UNIQUE,
    user_id          INTEGER NOT NULL,
    provider_id      INTEGER NOT NULL,
    full_name        TEXT NOT NULL,
    email            TEXT NOT NULL,
    specialty        TEXT NOT NULL,
    license_number   TEXT NOT NULL,
    consultation_fee INTEGER NOT NULL,
    status           TEXT NOT NULL DEFAULT 'submitted',
    created_at       TIMESTAMP NOT NULL
);
`

// NewDB открывает пустую базу без схемы
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	psqlbuilder.UsePlaceholder(squirrel.Question)

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// :memory: живет в рамках одного соединения
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewSchemaDB открывает базу и создает таблицы сервиса
func NewSchemaDB(t testing.TB) *sql.DB {
	t.Helper()

	db := NewDB(t)
	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("apply sqlite schema: %v", err)
	}
	return db
}
