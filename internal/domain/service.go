package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service represents a bookable offering of a company
type Service struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	Price           decimal.Decimal
	BookingLimit    int // максимум бронирований на одну календарную дату
	CompanyCIF      string
	Schedules       []Schedule
}

// Schedule weekly availability window of a service
type Schedule struct {
	ID         int64
	Weekdays   WeekdaySet
	Start      types.TimeString
	End        types.TimeString
	ServiceID  int64
	CompanyCIF string
}

// Covers проверяет, что время попадает в окно [Start, End) в указанный день.
// Бронирование может начинаться ровно в момент открытия, но не в момент закрытия.
func (s *Schedule) Covers(date time.Time, at types.TimeString) bool {
	if !s.Weekdays.Contains(date.Weekday()) {
		return false
	}
	return !at.IsBefore(s.Start) && at.IsBefore(s.End)
}

// IsValid проверяет инвариант Start < End
func (s *Schedule) IsValid() bool {
	return s.Start.Validate() == nil && s.End.Validate() == nil && s.Start.IsBefore(s.End)
}

// HasSchedule returns true if the service has at least one availability window
func (s *Service) HasSchedule() bool {
	return len(s.Schedules) > 0
}

// AcceptsAt returns true if any window of the service covers the given date and time
func (s *Service) AcceptsAt(date time.Time, at types.TimeString) bool {
	for i := range s.Schedules {
		if s.Schedules[i].Covers(date, at) {
			return true
		}
	}
	return false
}

// WindowsOn returns the windows that apply to the weekday of date
func (s *Service) WindowsOn(date time.Time) []Schedule {
	windows := make([]Schedule, 0, len(s.Schedules))
	for _, w := range s.Schedules {
		if w.Weekdays.Contains(date.Weekday()) {
			windows = append(windows, w)
		}
	}
	return windows
}
