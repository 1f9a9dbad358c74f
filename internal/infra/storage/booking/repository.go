package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"room_id",
	"user_id",
	"title",
	"booking_date",
	"start_time",
	"end_time",
	"notes",
	"category",
	"reusable_containers",
	"no_disposable_cup_headcount",
	"takeout_containers",
	"approved_disposable_containers",
	"non_compliance_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Пересечения и порядок времени проверяются ограничениями таблицы (no_overlap, bookings_time_order),
// нарушения возвращаются как ErrExecQuery с *pq.Error в цепочке.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. ID задаётся вызывающей стороной.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"room_id",
			"user_id",
			"title",
			"booking_date",
			"start_time",
			"end_time",
			"notes",
			"category",
			"reusable_containers",
			"no_disposable_cup_headcount",
			"takeout_containers",
			"approved_disposable_containers",
			"non_compliance_reason",
		).
		Values(
			booking.ID,
			booking.RoomID,
			booking.UserID,
			booking.Title,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.Notes,
			string(booking.Category),
			booking.ReusableContainers,
			booking.NoDisposableCupHeadcount,
			booking.TakeoutContainers,
			booking.ApprovedDisposableContainers,
			string(booking.NonComplianceReason),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Update перезаписывает изменяемые поля бронирования.
// Сама строка не конфликтует с собой по no_overlap, поэтому перенос внутри своего интервала допустим.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Update(table).
		Set("room_id", booking.RoomID).
		Set("user_id", booking.UserID).
		Set("title", booking.Title).
		Set("booking_date", booking.BookingDate.Format(domain.DateFormat)).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("notes", booking.Notes).
		Set("category", string(booking.Category)).
		Set("reusable_containers", booking.ReusableContainers).
		Set("no_disposable_cup_headcount", booking.NoDisposableCupHeadcount).
		Set("takeout_containers", booking.TakeoutContainers).
		Set("approved_disposable_containers", booking.ApprovedDisposableContainers).
		Set("non_compliance_reason", string(booking.NonComplianceReason)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListByRoom получает бронирования комнаты за период.
// Для одной даты сортировка по времени начала, для периода по дате и времени.
func (r *Repository) ListByRoom(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": filter.RoomID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByUser получает бронирования пользователя, ближайшие первыми
func (r *Repository) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.FromDate.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.OrderBy("booking_date ASC", "start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var category, reason string

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.UserID,
		&booking.Title,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Notes,
		&category,
		&booking.ReusableContainers,
		&booking.NoDisposableCupHeadcount,
		&booking.TakeoutContainers,
		&booking.ApprovedDisposableContainers,
		&reason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Category = domain.BookingCategory(category)
	booking.NonComplianceReason = domain.NonComplianceReason(reason)

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
