package admission

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceFinder источник услуг с расписанием
type ServiceFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingCounter счетчик активных бронирований услуги на дату
type BookingCounter interface {
	CountByServiceAndDate(ctx context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error)
}

// MetricsRecorder учет принятых решений
type MetricsRecorder interface {
	RecordAdmission(result string)
}
