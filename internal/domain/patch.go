package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingPatch частичное обновление бронирования.
// nil означает "поле не меняется"; заданное значение всегда заменяет текущее.
type BookingPatch struct {
	Date       *time.Time
	Time       *types.TimeString
	Status     *BookingStatus
	ClientDNI  *string
	CompanyCIF *string
	ServiceID  *int64
}

// IsEmpty true, если ни одно поле не задано
func (p BookingPatch) IsEmpty() bool {
	return p.Date == nil &&
		p.Time == nil &&
		p.Status == nil &&
		p.ClientDNI == nil &&
		p.CompanyCIF == nil &&
		p.ServiceID == nil
}

// ApplyTo возвращает копию бронирования с примененными полями
func (p BookingPatch) ApplyTo(b Booking) Booking {
	if p.Date != nil {
		b.Date = DateOnly(*p.Date)
	}
	if p.Time != nil {
		b.Time = *p.Time
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.ClientDNI != nil {
		b.ClientDNI = *p.ClientDNI
	}
	if p.CompanyCIF != nil {
		b.CompanyCIF = *p.CompanyCIF
	}
	if p.ServiceID != nil {
		b.ServiceID = *p.ServiceID
	}
	return b
}
