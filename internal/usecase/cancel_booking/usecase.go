package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
)

// UseCase use case для отмены бронирования.
// Отмена удаляет запись из журнала, клиент получает предупреждение.
type UseCase struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute отменяет бронирование и возвращает удаленную запись
func (uc *UseCase) Execute(ctx context.Context, id int64) (*domain.Booking, error) {
	uc.logger.Info("CancelBooking: id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if err := uc.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// удалена параллельным запросом
			uc.logger.Warn("CancelBooking: booking id=%d disappeared before delete", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to delete booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: successfully deleted booking id=%d", id)

	_, err = uc.notifier.Notify(
		ctx,
		domain.ClientRecipient(booking.ClientDNI),
		notifications.BookingCancelledMessage(booking),
		domain.NotificationWarning,
	)
	if err != nil {
		uc.logger.Warn("CancelBooking: notification for booking id=%d not fully delivered: %v", id, err)
	}

	return booking, nil
}
