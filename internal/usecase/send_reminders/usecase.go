package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
)

// UseCase ежедневный обход предстоящих бронирований с напоминаниями клиентам.
// Повторный запуск в тот же день отправит напоминания еще раз.
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	logger Logger,
	cfg Config,
) *UseCase {
	if cfg.WindowDays < 0 {
		cfg.WindowDays = domain.DefaultReminderDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(p TimeProvider) *UseCase {
	uc.timeProvider = p
	return uc
}

// Execute отправляет по одному напоминанию на каждую активную бронь
// с датой в окне [сегодня, сегодня + WindowDays].
// Ошибка возвращается только если не удалось прочитать бронирования.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	today := domain.DateOnly(uc.timeProvider.Now().In(uc.cfg.Location))
	result := &Result{
		From: today,
		To:   today.AddDate(0, 0, uc.cfg.WindowDays),
	}

	uc.logger.Info("SendReminders: scanning bookings from %s to %s",
		result.From.Format(domain.DateFormat), result.To.Format(domain.DateFormat))

	bookings, err := uc.bookingRepo.GetActiveByDateRange(ctx, result.From, result.To)
	if err != nil {
		uc.logger.Error("SendReminders: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}
	result.Scanned = len(bookings)

	for _, b := range bookings {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("SendReminders: interrupted after %d of %d bookings: %v", result.Notified+result.Failed, result.Scanned, err)
			break
		}

		_, err := uc.notifier.Notify(
			ctx,
			domain.ClientRecipient(b.ClientDNI),
			notifications.BookingReminderMessage(b),
			domain.NotificationInfo,
		)
		switch {
		case err == nil:
			result.Notified++
		case errors.Is(err, notifications.ErrDeliveryFailed):
			result.Notified++
			result.DeliveryFailed++
			uc.logger.Warn("SendReminders: reminder for booking id=%d stored, email failed: %v", b.ID, err)
		default:
			result.Failed++
			uc.logger.Error("SendReminders: reminder for booking id=%d failed: %v", b.ID, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.RecordReminders(result.Notified)
	}

	uc.logger.Info("SendReminders: scanned=%d notified=%d deliveryFailed=%d failed=%d",
		result.Scanned, result.Notified, result.DeliveryFailed, result.Failed)

	return result, nil
}
