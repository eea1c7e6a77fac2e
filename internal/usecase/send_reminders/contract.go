package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// Notifier диспетчер уведомлений
type Notifier interface {
	Notify(ctx context.Context, recipient domain.Recipient, message string, notificationType domain.NotificationType) (*domain.Notification, error)
}

// MetricsRecorder учет отправленных напоминаний
type MetricsRecorder interface {
	RecordReminders(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
