package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDIENTE"
	StatusConfirmed BookingStatus = "CONFIRMADA"
	StatusCompleted BookingStatus = "COMPLETADA"
	StatusCancelled BookingStatus = "CANCELADA"
)

// Booking represents a client's booking of a company service
type Booking struct {
	ID         int64
	ClientDNI  string // natural key клиента
	CompanyCIF string // natural key компании
	ServiceID  int64
	Date       time.Time // календарная дата (полночь UTC)
	Time       types.TimeString
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies service capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// SameSlot returns true if both bookings target the same service on the same date
func (b *Booking) SameSlot(other *Booking) bool {
	return b.ServiceID == other.ServiceID && SameDate(b.Date, other.Date)
}

// ParseBookingStatus converts a string into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// DateOnly отбрасывает время и зону, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate сравнивает только календарные даты
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseDate парсит дату "YYYY-MM-DD"
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, strings.TrimSpace(s))
}
