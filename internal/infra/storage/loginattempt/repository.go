package loginattempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const table = "login_attempts"

// Repository хранилище счётчиков неудачных входов в PostgreSQL
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает запись по адресу
func (r *Repository) Get(ctx context.Context, address string) (*domain.LoginAttempt, error) {
	query, args, err := psqlbuilder.Select("address", "attempts", "last_attempt").
		From(table).
		Where(squirrel.Eq{"address": address}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var attempt domain.LoginAttempt
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&attempt.Address, &attempt.Attempts, &attempt.LastAttempt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan attempt: %v", ErrScanRow, err)
	}

	return &attempt, nil
}

// Insert создает запись
func (r *Repository) Insert(ctx context.Context, attempt *domain.LoginAttempt) error {
	query, args, err := psqlbuilder.Insert(table).
		Columns("address", "attempts", "last_attempt").
		Values(attempt.Address, attempt.Attempts, attempt.LastAttempt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Update перезаписывает счётчик и время последней попытки
func (r *Repository) Update(ctx context.Context, attempt *domain.LoginAttempt) error {
	query, args, err := psqlbuilder.Update(table).
		Set("attempts", attempt.Attempts).
		Set("last_attempt", attempt.LastAttempt).
		Where(squirrel.Eq{"address": attempt.Address}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет запись. Отсутствие записи не считается ошибкой.
func (r *Repository) Delete(ctx context.Context, address string) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"address": address}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
