package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/directory"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Метки решений для метрики admission_decisions_total
const (
	ResultAccepted        = "accepted"
	ResultServiceNotFound = "service_not_found"
	ResultNoSchedule      = "no_schedule"
	ResultOutsideSchedule = "outside_schedule"
	ResultCapacityReached = "capacity_reached"
	ResultError           = "error"
)

// Candidate предлагаемое или измененное бронирование
type Candidate struct {
	ServiceID int64
	Date      time.Time
	Time      types.TimeString

	// ExcludeBookingID не учитывать это бронирование при подсчете (редактирование на месте)
	ExcludeBookingID *int64
}

// Rule правило допуска бронирования: расписание услуги и лимит на дату
type Rule struct {
	services ServiceFinder
	bookings BookingCounter
	metrics  MetricsRecorder
}

// NewRule создает правило допуска. metrics может быть nil.
func NewRule(services ServiceFinder, bookings BookingCounter, metrics MetricsRecorder) *Rule {
	return &Rule{
		services: services,
		bookings: bookings,
		metrics:  metrics,
	}
}

// Evaluate возвращает nil, если кандидат допустим, иначе причину отказа
func (r *Rule) Evaluate(ctx context.Context, c Candidate) error {
	_, err := r.Admit(ctx, c)
	return err
}

// Admit как Evaluate, но дополнительно отдает загруженную услугу.
// Проверки идут строго по порядку: услуга, наличие расписания, окно, вместимость.
func (r *Rule) Admit(ctx context.Context, c Candidate) (*domain.Service, error) {
	service, err := r.services.GetByID(ctx, c.ServiceID)
	if err != nil {
		if errors.Is(err, directory.ErrServiceNotFound) {
			r.record(ResultServiceNotFound)
			return nil, ErrServiceNotFound
		}
		r.record(ResultError)
		return nil, fmt.Errorf("%w: Admit - service %d: %v", ErrLookupService, c.ServiceID, err)
	}

	if err := CheckSchedule(service, c.Date, c.Time); err != nil {
		r.record(resultFor(err))
		return nil, err
	}

	count, err := r.bookings.CountByServiceAndDate(ctx, service.ID, domain.DateOnly(c.Date), c.ExcludeBookingID)
	if err != nil {
		r.record(ResultError)
		return nil, fmt.Errorf("%w: Admit - service %d: %v", ErrCountBookings, c.ServiceID, err)
	}

	if err := CheckCapacity(count, service.BookingLimit); err != nil {
		r.record(ResultCapacityReached)
		return nil, err
	}

	r.record(ResultAccepted)
	return service, nil
}

// CheckSchedule проверяет, что у услуги есть расписание и время попадает в одно из окон
func CheckSchedule(service *domain.Service, date time.Time, at types.TimeString) error {
	if !service.HasSchedule() {
		return ErrNoSchedule
	}
	if !service.AcceptsAt(date, at) {
		return ErrOutsideSchedule
	}
	return nil
}

// CheckCapacity отказывает, когда активных бронирований уже не меньше лимита
func CheckCapacity(count, limit int) error {
	if count >= limit {
		return ErrCapacityReached
	}
	return nil
}

func (r *Rule) record(result string) {
	if r.metrics != nil {
		r.metrics.RecordAdmission(result)
	}
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, ErrNoSchedule):
		return ResultNoSchedule
	case errors.Is(err, ErrOutsideSchedule):
		return ResultOutsideSchedule
	case errors.Is(err, ErrCapacityReached):
		return ResultCapacityReached
	default:
		return ResultError
	}
}
