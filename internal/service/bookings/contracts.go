package bookings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClient(ctx context.Context, clientDNI string) ([]*domain.Booking, error)
	GetByCompany(ctx context.Context, companyCIF string) ([]*domain.Booking, error)
	DeleteByClient(ctx context.Context, clientDNI string) (int64, error)
	DeleteByCompany(ctx context.Context, companyCIF string) (int64, error)
}

// ClientDirectory проверка существования клиента
type ClientDirectory interface {
	Exists(ctx context.Context, dni string) (bool, error)
}

// CompanyDirectory проверка существования компании
type CompanyDirectory interface {
	Exists(ctx context.Context, cif string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
