package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockServiceDate(ctx context.Context, serviceID int64, date time.Time) error
}

// ClientDirectory проверка существования клиента
type ClientDirectory interface {
	Exists(ctx context.Context, dni string) (bool, error)
}

// CompanyDirectory проверка существования компании
type CompanyDirectory interface {
	Exists(ctx context.Context, cif string) (bool, error)
}

// ServiceDirectory проверка существования услуги
type ServiceDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// AdmissionRule правило допуска бронирования
type AdmissionRule interface {
	Admit(ctx context.Context, c admission.Candidate) (*domain.Service, error)
}

// Notifier диспетчер уведомлений
type Notifier interface {
	Notify(ctx context.Context, recipient domain.Recipient, message string, notificationType domain.NotificationType) (*domain.Notification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
