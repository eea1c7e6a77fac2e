package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	updateBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "ID de reserva no válido"
	msgInvalidRequestBody = "cuerpo de la petición no válido"
	msgNotFound           = "reserva no encontrada"
	msgClientNotFound     = "cliente no encontrado"
	msgCompanyNotFound    = "empresa no encontrada"
	msgServiceNotFound    = "servicio no encontrado"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: booking_id=%d: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Validation failed: booking_id=%d: %v", bookingID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: booking_id=%d: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateBooking.Request{ID: bookingID, Patch: patch})
	if err != nil {
		switch {
		case admission.IsRejection(err) && !errors.Is(err, admission.ErrServiceNotFound):
			h.logger.Warn("PUT /bookings/{id} - Rejected: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrClientNotFound):
			h.logger.Warn("PUT /bookings/{id} - Client not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, updateBooking.ErrCompanyNotFound):
			h.logger.Warn("PUT /bookings/{id} - Company not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, updateBooking.ErrServiceNotFound):
			h.logger.Warn("PUT /bookings/{id} - Service not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
