package admission

import "errors"

// Причины отказа. Тексты уходят клиенту как есть.
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrNoSchedule      = errors.New("service has no defined schedule")
	ErrOutsideSchedule = errors.New("time outside available schedule")
	ErrCapacityReached = errors.New("capacity limit reached")
)

var (
	// ErrLookupService возвращается при сбое чтения услуги
	ErrLookupService = errors.New("admission: failed to load service")

	// ErrCountBookings возвращается при сбое подсчета бронирований
	ErrCountBookings = errors.New("admission: failed to count bookings")
)

// IsRejection true для отказов по бизнес-правилам (в отличие от сбоев хранилища)
func IsRejection(err error) bool {
	return errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrNoSchedule) ||
		errors.Is(err, ErrOutsideSchedule) ||
		errors.Is(err, ErrCapacityReached)
}
