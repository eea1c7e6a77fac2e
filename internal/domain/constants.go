package domain

import "errors"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinBookingLimit        = 1
	MaxNotificationLength  = 1000
	DefaultReminderDays    = 1  // сегодня и завтра
	DefaultSlotStepMinutes = 30 // шаг, если у услуги не задана длительность
)

// AllStatuses полный список допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// InactiveStatuses статусы, не занимающие вместимость услуги
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

var (
	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidWeekday возвращается при неизвестном названии дня недели
	ErrInvalidWeekday = errors.New("invalid weekday token")
)
