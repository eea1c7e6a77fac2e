package get_company_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const (
	msgInvalidCIF      = "CIF no válido"
	msgCompanyNotFound = "empresa no encontrada"
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

// Handle GET /api/v1/companies/{cif}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cif := mux.Vars(r)["cif"]

	result, err := h.service.GetCompanyBookings(r.Context(), cif)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /companies/{cif}/bookings - Invalid CIF: %q", cif)
			handlers.RespondBadRequest(w, msgInvalidCIF)

		case errors.Is(err, bookings.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{cif}/bookings - Company not found: company_cif=%s", cif)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{cif}/bookings - Failed to get bookings: company_cif=%s, error=%v",
				cif, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{cif}/bookings - Bookings retrieved successfully: company_cif=%s, count=%d",
		cif, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
