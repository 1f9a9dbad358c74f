package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestAsViolation(t *testing.T) {
	base := &pq.Error{Code: "23P01", Constraint: "no_overlap", Message: "conflicting key value"}
	wrapped := fmt.Errorf("booking.repository: exec: %w", base)

	v, ok := AsViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, Violation{Code: CodeExclusionViolation, Constraint: "no_overlap"}, v)

	_, ok = AsViolation(&pq.Error{Code: "42P01"})
	assert.False(t, ok, "non-integrity errors are not violations")

	_, ok = AsViolation(errors.New("no_overlap"))
	assert.False(t, ok, "message text alone is never classified")
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &pq.Error{Code: "23514", Constraint: "bookings_time_order"})

	assert.True(t, Is(err, CodeCheckViolation, "bookings_time_order"))
	assert.True(t, Is(err, CodeCheckViolation, ""))
	assert.False(t, Is(err, CodeCheckViolation, "rooms_capacity_check"))
	assert.False(t, Is(err, CodeExclusionViolation, "bookings_time_order"))
	assert.False(t, Is(nil, CodeCheckViolation, ""))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505", Constraint: "rooms_name_key"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
}
