package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func newBooking(roomID, userID int64, date time.Time, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:                  uuid.New(),
		RoomID:              roomID,
		UserID:              userID,
		Title:               "Planning",
		BookingDate:         date,
		StartTime:           start,
		EndTime:             end,
		Category:            domain.CategoryMeeting,
		NonComplianceReason: domain.ReasonNone,
	}
}

func TestRepository_CRUD(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	roomID := storagetest.SeedRoom(t, db)
	userID := storagetest.SeedUser(t, db, "user")
	date := time.Now().AddDate(0, 0, 7)

	b := newBooking(roomID, userID, date, "10:00", "11:00")
	notes := "bring projector"
	b.Notes = &notes
	require.NoError(t, repo.Create(ctx, b))
	assert.False(t, b.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, types.TimeString("11:00"), got.EndTime)
	assert.Equal(t, date.Format(domain.DateFormat), got.BookingDate.Format(domain.DateFormat))
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)

	got.Title = "Retro"
	got.EndTime = "11:30"
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.ListByRoom(ctx, domain.RoomBookingsFilter{RoomID: roomID, StartDate: &date, EndDate: &date})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Retro", list[0].Title)

	byUser, err := repo.ListByUser(ctx, domain.UserBookingsFilter{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), booking.ErrBookingNotFound)
}

func TestRepository_Constraints(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	roomID := storagetest.SeedRoom(t, db)
	userID := storagetest.SeedUser(t, db, "user")
	date := time.Now().AddDate(0, 0, 3)

	require.NoError(t, repo.Create(ctx, newBooking(roomID, userID, date, "10:00", "11:00")))

	err := repo.Create(ctx, newBooking(roomID, userID, date, "10:30", "11:30"))
	assert.ErrorIs(t, err, booking.ErrExecQuery)
	assert.True(t, pgerrors.Is(err, pgerrors.CodeExclusionViolation, domain.ConstraintNoOverlap))

	assert.NoError(t, repo.Create(ctx, newBooking(roomID, userID, date, "11:00", "12:00")), "back-to-back is legal")

	err = repo.Create(ctx, newBooking(roomID, userID, date, "15:00", "15:00"))
	assert.True(t, pgerrors.Is(err, pgerrors.CodeCheckViolation, domain.ConstraintTimeOrder))
}

func TestRepository_ConcurrentOverlap(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)

	roomID := storagetest.SeedRoom(t, db)
	userID := storagetest.SeedUser(t, db, "user")
	date := time.Now().AddDate(0, 0, 5)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(context.Background(), newBooking(roomID, userID, date, "14:00", "15:00"))
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, overlapped := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case pgerrors.Is(err, pgerrors.CodeExclusionViolation, domain.ConstraintNoOverlap):
			overlapped++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, overlapped)
}
