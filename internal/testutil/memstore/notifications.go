package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
)

// NotificationLog фейк notification.Repository
type NotificationLog struct{ s *Store }

// NotificationLog возвращает репозиторий уведомлений поверх хранилища
func (s *Store) NotificationLog() *NotificationLog {
	return &NotificationLog{s: s}
}

// Create как и database/sql, не выполняется на отмененном ctx
func (n *NotificationLog) Create(ctx context.Context, item *domain.Notification) (*domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	if n.s.FailNotifications != nil {
		return nil, n.s.FailNotifications
	}
	if (item.ClientDNI == nil) == (item.CompanyCIF == nil) {
		return nil, notification.ErrInvalidRecipient
	}

	n.s.nextNotificationID++
	item.ID = n.s.nextNotificationID
	item.CreatedAt = time.Now()
	n.s.notifications = append(n.s.notifications, *item)

	return item, nil
}

func (n *NotificationLog) MarkEmailSent(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	for i := range n.s.notifications {
		if n.s.notifications[i].ID == id {
			n.s.notifications[i].EmailSent = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}
