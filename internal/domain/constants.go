package domain

import "time"

// Default configuration values
const (
	DefaultUTCOffsetMinutes = 8 * 60 // UTC+8
	DefaultWorkdayStart     = "08:00"
	DefaultWorkdayEnd       = "20:00"

	DefaultLoginMaxAttempts = 5
	DefaultLoginBlockWindow = 5 * time.Minute
	DefaultSessionTTL       = 12 * time.Hour
)

// Business validation constants
const (
	MaxTitleLength        = 200
	MaxNotesLength        = 500
	MaxContainerCount     = 10000
	MaxRoomNameLength     = 100
	MaxRoomLocationLength = 200
	MaxRoomCapacity       = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Constraint names in the bookings table
const (
	ConstraintNoOverlap = "no_overlap"
	ConstraintTimeOrder = "bookings_time_order"
)
