package smtpmail

import "errors"

var (
	// ErrInvalidRecipient возвращается при пустом адресе получателя
	ErrInvalidRecipient = errors.New("smtpmail client: empty recipient address")

	// ErrSend возвращается при ошибке SMTP соединения или отправки
	ErrSend = errors.New("smtpmail client: failed to send message")
)
