package update_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Заданное поле патча должно быть корректным, пустой патч не допускается.
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	p := req.Patch
	if p.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if p.ClientDNI != nil && strings.TrimSpace(*p.ClientDNI) == "" {
		return fmt.Errorf("%w: clientDni must not be blank", ErrInvalidInput)
	}

	if p.CompanyCIF != nil && strings.TrimSpace(*p.CompanyCIF) == "" {
		return fmt.Errorf("%w: companyCif must not be blank", ErrInvalidInput)
	}

	if p.ServiceID != nil && *p.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if p.Date != nil && p.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}

	if p.Time != nil {
		if err := p.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	if p.Status != nil {
		if _, err := domain.ParseBookingStatus(string(*p.Status)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// normalizePatch убирает пробелы вокруг ключей справочников
func normalizePatch(p domain.BookingPatch) domain.BookingPatch {
	if p.ClientDNI != nil {
		dni := strings.TrimSpace(*p.ClientDNI)
		p.ClientDNI = &dni
	}
	if p.CompanyCIF != nil {
		cif := strings.TrimSpace(*p.CompanyCIF)
		p.CompanyCIF = &cif
	}
	return p
}
