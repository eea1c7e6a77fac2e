package mailjet

import "errors"

var (
	// ErrInvalidRecipient возвращается при пустом адресе получателя
	ErrInvalidRecipient = errors.New("mailjet client: empty recipient address")

	// ErrSend возвращается при ошибке вызова Send API
	ErrSend = errors.New("mailjet client: failed to send message")

	// ErrRejected возвращается, когда Mailjet принял запрос, но не письмо
	ErrRejected = errors.New("mailjet client: message rejected")
)
