package cancel_company_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const msgUnknownOwner = "CIF no válido o empresa desconocida"

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

// Handle DELETE /api/v1/companies/{cif}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cif := mux.Vars(r)["cif"]

	result, err := h.service.DeleteAllForCompany(r.Context(), cif)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("DELETE /companies/{cif}/bookings - Unknown owner: company_cif=%q", cif)
			handlers.RespondBadRequest(w, msgUnknownOwner)

		default:
			h.logger.Error("DELETE /companies/{cif}/bookings - Failed to delete bookings: company_cif=%s, error=%v", cif, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /companies/{cif}/bookings - Bookings deleted: company_cif=%s, count=%d", cif, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
