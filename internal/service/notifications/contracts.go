package notifications

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// NotificationRepository хранилище уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	MarkEmailSent(ctx context.Context, id int64) error
}

// ClientDirectory справочник клиентов (адрес почты по DNI)
type ClientDirectory interface {
	GetByDNI(ctx context.Context, dni string) (*domain.Client, error)
}

// CompanyDirectory справочник компаний (адрес почты по CIF)
type CompanyDirectory interface {
	GetByCIF(ctx context.Context, cif string) (*domain.Company, error)
}

// EmailGateway внешний почтовый шлюз
type EmailGateway interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MetricsRecorder метрики уведомлений
type MetricsRecorder interface {
	RecordNotification(notificationType string)
	RecordEmailDelivery(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
