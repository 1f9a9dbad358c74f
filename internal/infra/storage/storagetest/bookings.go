package storagetest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
)

// BookingStore хранилище бронирований в памяти для тестов use case.
// Повторяет ограничения таблицы bookings: возвращает *pq.Error с теми же кодами и именами ограничений.
type BookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]domain.Booking
	writes   int

	// Err если задан, возвращается любым методом записи
	Err error
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[uuid.UUID]domain.Booking)}
}

// Writes количество вызовов Create и Update
func (s *BookingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Len количество сохранённых бронирований
func (s *BookingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *BookingStore) Create(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++

	if err := s.check(booking); err != nil {
		return err
	}
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *BookingStore) Update(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++

	if _, ok := s.bookings[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if err := s.check(booking); err != nil {
		return err
	}
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *BookingStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &booking, nil
}

func (s *BookingStore) ListByRoom(_ context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.RoomID != filter.RoomID {
			continue
		}
		day := b.BookingDate.Format(domain.DateFormat)
		if filter.StartDate != nil && day < filter.StartDate.Format(domain.DateFormat) {
			continue
		}
		if filter.EndDate != nil && day > filter.EndDate.Format(domain.DateFormat) {
			continue
		}
		booking := b
		result = append(result, &booking)
	}
	return result, nil
}

func (s *BookingStore) check(booking *domain.Booking) error {
	if s.Err != nil {
		return s.Err
	}
	if !booking.EndTime.IsAfter(booking.StartTime) {
		return &pq.Error{Code: "23514", Constraint: domain.ConstraintTimeOrder,
			Message: `new row for relation "bookings" violates check constraint "bookings_time_order"`}
	}
	for id, existing := range s.bookings {
		if id == booking.ID {
			continue
		}
		if existing.Overlaps(booking) {
			return &pq.Error{Code: "23P01", Constraint: domain.ConstraintNoOverlap,
				Message: `conflicting key value violates exclusion constraint "no_overlap"`}
		}
	}
	return nil
}
