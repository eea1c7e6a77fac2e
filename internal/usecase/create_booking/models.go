package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientDNI  string               // DNI клиента
	CompanyCIF string               // CIF компании
	ServiceID  int64                // ID услуги
	Date       time.Time            // Дата бронирования (без времени)
	Time       types.TimeString     // Время (например, "10:00")
	Status     domain.BookingStatus // Начальный статус
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking     *domain.Booking
	ServiceName string
}
