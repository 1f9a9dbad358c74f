package dbmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", operation("SELECT id FROM bookings WHERE id = $1"))
	assert.Equal(t, "INSERT", operation("  insert INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "UNKNOWN", operation("   "))
}
