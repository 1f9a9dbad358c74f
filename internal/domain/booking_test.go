package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var utc8 = time.FixedZone("UTC+8", 8*60*60)

func newBooking(roomID int64, date time.Time, start, end types.TimeString) *Booking {
	return &Booking{RoomID: roomID, BookingDate: date, StartTime: start, EndTime: end}
}

func TestBooking_Overlaps(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	a := newBooking(1, date, "09:00", "10:00")

	tests := []struct {
		name  string
		other *Booking
		want  bool
	}{
		{name: "partial overlap", other: newBooking(1, date, "09:30", "10:30"), want: true},
		{name: "contained", other: newBooking(1, date, "09:15", "09:45"), want: true},
		{name: "back to back after", other: newBooking(1, date, "10:00", "11:00"), want: false},
		{name: "back to back before", other: newBooking(1, date, "08:00", "09:00"), want: false},
		{name: "other room", other: newBooking(2, date, "09:00", "10:00"), want: false},
		{name: "other date", other: newBooking(1, date.AddDate(0, 0, 1), "09:00", "10:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(a))
		})
	}
}

func TestBooking_HasEnded(t *testing.T) {
	b := newBooking(1, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", "10:00")

	// 10:00 UTC+8 == 02:00 UTC
	assert.False(t, b.HasEnded(time.Date(2025, 6, 10, 1, 59, 0, 0, time.UTC), utc8))
	assert.False(t, b.HasEnded(time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC), utc8))
	assert.True(t, b.HasEnded(time.Date(2025, 6, 10, 2, 0, 1, 0, time.UTC), utc8))
}

func TestLoginAttempt_WindowElapsed(t *testing.T) {
	last := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	a := &LoginAttempt{Address: "10.0.0.1", Attempts: 5, LastAttempt: last}

	assert.False(t, a.WindowElapsed(last.Add(5*time.Minute), 5*time.Minute))
	assert.True(t, a.WindowElapsed(last.Add(5*time.Minute+time.Second), 5*time.Minute))
}

func TestEnums(t *testing.T) {
	assert.True(t, IsValidCategory(CategoryTraining))
	assert.False(t, IsValidCategory("party"))
	assert.True(t, IsValidNonComplianceReason(ReasonOther))
	assert.False(t, IsValidNonComplianceReason(""))
}
