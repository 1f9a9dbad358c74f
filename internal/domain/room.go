package domain

import "time"

// Room переговорная комната
type Room struct {
	ID        int64
	Name      string
	Location  string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeBooked возвращает true, если комнату можно бронировать
func (r *Room) CanBeBooked() bool {
	return r.IsActive
}
