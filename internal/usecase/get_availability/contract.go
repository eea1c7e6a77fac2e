package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceDirectory каталог услуг с расписанием
type ServiceDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingCounter подсчет активных бронирований на дату
type BookingCounter interface {
	CountByServiceAndDate(ctx context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error)
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
