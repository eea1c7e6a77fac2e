package update_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UpdateBookingRequest HTTP request model: отсутствующее поле не меняется
type UpdateBookingRequest struct {
	Date       *string `json:"date,omitempty" validate:"omitempty,bookingdate"`
	Time       *string `json:"time,omitempty" validate:"omitempty,bookingtime"`
	Status     *string `json:"status,omitempty" validate:"omitempty,bookingstatus"`
	ClientDNI  *string `json:"clientDni,omitempty"`
	CompanyCIF *string `json:"companyCif,omitempty"`
	ServiceID  *int64  `json:"serviceId,omitempty" validate:"omitempty,gt=0"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	Message string                  `json:"message"`
	Booking *models.BookingResponse `json:"booking"`
}

// ToPatch конвертирует HTTP запрос в патч бронирования
func (r *UpdateBookingRequest) ToPatch() (domain.BookingPatch, error) {
	patch := domain.BookingPatch{
		ClientDNI:  r.ClientDNI,
		CompanyCIF: r.CompanyCIF,
		ServiceID:  r.ServiceID,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}

	if r.Time != nil {
		at, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return patch, err
		}
		patch.Time = &at
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		patch.Status = &status
	}

	return patch, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Message: resp.Message,
		Booking: models.FromDomainBooking(resp.Booking),
	}
}
