package cancel_client_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const msgUnknownOwner = "DNI no válido o cliente desconocido"

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

// Handle DELETE /api/v1/clients/{dni}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dni := mux.Vars(r)["dni"]

	result, err := h.service.DeleteAllForClient(r.Context(), dni)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("DELETE /clients/{dni}/bookings - Unknown owner: client_dni=%q", dni)
			handlers.RespondBadRequest(w, msgUnknownOwner)

		default:
			h.logger.Error("DELETE /clients/{dni}/bookings - Failed to delete bookings: client_dni=%s, error=%v", dni, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /clients/{dni}/bookings - Bookings deleted: client_dni=%s, count=%d", dni, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
