package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientDNI  string `json:"clientDni" validate:"required"`
	CompanyCIF string `json:"companyCif" validate:"required"`
	ServiceID  int64  `json:"serviceId" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required,bookingdate"` // "2025-10-15"
	Time       string `json:"time" validate:"required,bookingtime"` // "10:00"
	Status     string `json:"status" validate:"required,bookingstatus"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	models.BookingResponse
	ServiceName string `json:"serviceName"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат полей уже проверен валидатором.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	at, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientDNI:  strings.TrimSpace(r.ClientDNI),
		CompanyCIF: strings.TrimSpace(r.CompanyCIF),
		ServiceID:  r.ServiceID,
		Date:       date,
		Time:       at,
		Status:     domain.BookingStatus(r.Status),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		ServiceName:     resp.ServiceName,
	}
}
