package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/directory"
)

// UseCase use case для получения доступности услуги на дату
type UseCase struct {
	services     ServiceDirectory
	bookings     BookingCounter
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// loc задает зону, в которой считаются "сегодня" и прошедшие слоты; nil означает UTC.
func NewUseCase(services ServiceDirectory, bookings BookingCounter, logger Logger, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		services:     services,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(p TimeProvider) *UseCase {
	uc.timeProvider = p
	return uc
}

// Execute возвращает окна услуги в этот день недели, лимит и число свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now().In(uc.loc)
	date := domain.DateOnly(req.Date)
	if isDateInPast(date, now) {
		uc.logger.Warn("GetAvailability: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Услуга и ее расписание
	service, err := uc.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directory.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	availability := domain.Availability{
		ServiceID:    service.ID,
		Date:         date,
		Windows:      service.WindowsOn(date),
		BookingLimit: service.BookingLimit,
	}

	// 3. Закрытый день: считать бронирования незачем
	if !availability.IsOpen() {
		uc.logger.Info("GetAvailability: service=%d has no windows on %s", service.ID, date.Weekday())
		return &Response{Service: service, Availability: availability, StartTimes: nil}, nil
	}

	// 4. Занятость на дату
	booked, err := uc.bookings.CountByServiceAndDate(ctx, service.ID, date, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}
	availability.Booked = booked

	times := startTimes(availability.Windows, service.DurationMinutes, date, now)
	if availability.IsFull() {
		times = nil
	}

	uc.logger.Info("GetAvailability: service=%d date=%s booked=%d/%d",
		service.ID, date.Format(domain.DateFormat), availability.Booked, availability.BookingLimit)

	return &Response{
		Service:      service,
		Availability: availability,
		StartTimes:   times,
	}, nil
}
