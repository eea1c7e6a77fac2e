package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	ClientDNI   string `json:"clientDni"`
	CompanyCIF  string `json:"companyCif"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"date"` // "2025-10-15"
	BookingTime string `json:"time"` // "10:00"
	Status      string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DeletedResponse результат массового удаления
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		ClientDNI:   b.ClientDNI,
		CompanyCIF:  b.CompanyCIF,
		ServiceID:   b.ServiceID,
		BookingDate: b.Date.Format(domain.DateFormat),
		BookingTime: b.Time.String(),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
