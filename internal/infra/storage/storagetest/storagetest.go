// Package storagetest поднимает тестовую схему в PostgreSQL для интеграционных тестов репозиториев.
// Тесты пропускаются, если BOOKING_TEST_DATABASE_DSN не задан.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/migrations"
)

// DSNEnv переменная окружения со строкой подключения к тестовой БД
const DSNEnv = "BOOKING_TEST_DATABASE_DSN"

// Open подключается к тестовой БД, применяет миграции и очищает таблицы
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", DSNEnv)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))

	_, err = migrations.Apply(ctx, db)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "TRUNCATE bookings, sessions, login_attempts, rooms, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return db
}

// SeedUser создает пользователя и возвращает его ID
func SeedUser(t *testing.T, db *sql.DB, role string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO users (email, name, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id",
		fmt.Sprintf("%s@example.com", uuid.NewString()), "Test User", "x", role,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// SeedRoom создает активную комнату и возвращает её ID
func SeedRoom(t *testing.T, db *sql.DB) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO rooms (name, location, capacity) VALUES ($1, $2, $3) RETURNING id",
		"Room "+uuid.NewString()[:8], "2nd floor", 8,
	).Scan(&id)
	require.NoError(t, err)

	return id
}
