package notifications

import "errors"

var (
	// ErrInvalidNotification возвращается при пустом тексте, неизвестном типе или адресате
	ErrInvalidNotification = errors.New("notifications: invalid notification")

	// ErrPersist возвращается, когда уведомление не удалось сохранить (письмо не отправляется)
	ErrPersist = errors.New("notifications: failed to persist notification")

	// ErrDeliveryFailed возвращается, когда уведомление сохранено, но письмо не доставлено
	ErrDeliveryFailed = errors.New("notifications: email delivery failed")
)
