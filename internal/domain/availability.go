package domain

import "time"

// Availability capacity of a service on one calendar date
type Availability struct {
	ServiceID    int64
	Date         time.Time
	Windows      []Schedule // окна, действующие в этот день недели
	BookingLimit int
	Booked       int // активные бронирования на дату
}

// Remaining returns the number of bookings still accepted for the date
func (a *Availability) Remaining() int {
	remaining := a.BookingLimit - a.Booked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsOpen returns true if the service has at least one window on that weekday
func (a *Availability) IsOpen() bool {
	return len(a.Windows) > 0
}

// IsFull returns true if no more bookings fit on that date
func (a *Availability) IsFull() bool {
	return a.Remaining() == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (a *Availability) OccupancyRate() float64 {
	if a.BookingLimit == 0 {
		return 0
	}
	return float64(a.Booked) / float64(a.BookingLimit) * 100
}
