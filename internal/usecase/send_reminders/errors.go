package send_reminders

import "errors"

var (
	// ErrInternal возвращается, когда не удалось прочитать бронирования
	ErrInternal = errors.New("send_reminders: internal error")
)
