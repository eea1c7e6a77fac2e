package update_booking

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// SuccessMessage текст ответа при успешном изменении
const SuccessMessage = "Reserva actualizada correctamente"

// Request модель запроса на изменение бронирования
type Request struct {
	ID    int64
	Patch domain.BookingPatch
}

// Response модель ответа
type Response struct {
	Message     string
	Booking     *domain.Booking
	ServiceName string
}
