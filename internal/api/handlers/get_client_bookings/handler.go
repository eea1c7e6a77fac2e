package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const (
	msgInvalidDNI     = "DNI no válido"
	msgClientNotFound = "cliente no encontrado"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{dni}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dni := mux.Vars(r)["dni"]

	result, err := h.service.GetClientBookings(r.Context(), dni)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clients/{dni}/bookings - Invalid DNI: %q", dni)
			handlers.RespondBadRequest(w, msgInvalidDNI)

		case errors.Is(err, bookings.ErrClientNotFound):
			h.logger.Warn("GET /clients/{dni}/bookings - Client not found: client_dni=%s", dni)
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("GET /clients/{dni}/bookings - Failed to get bookings: client_dni=%s, error=%v",
				dni, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{dni}/bookings - Bookings retrieved successfully: client_dni=%s, count=%d",
		dni, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
