package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrClientNotFound возвращается, когда новый клиент не найден
	ErrClientNotFound = errors.New("update_booking: client not found")

	// ErrCompanyNotFound возвращается, когда новая компания не найдена
	ErrCompanyNotFound = errors.New("update_booking: company not found")

	// ErrServiceNotFound возвращается, когда новая услуга не найдена
	ErrServiceNotFound = errors.New("update_booking: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
