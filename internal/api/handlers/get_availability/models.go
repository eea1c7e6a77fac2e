package get_availability

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Date            string          `json:"date"`
	Open            bool            `json:"open"`
	Windows         []Window        `json:"windows"`
	BookingLimit    int             `json:"bookingLimit"`
	Booked          int             `json:"booked"`
	Remaining       int             `json:"remaining"`
	StartTimes      []string        `json:"startTimes"`
}

// Window окно расписания, действующее в этот день
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	a := resp.Availability

	windows := make([]Window, len(a.Windows))
	for i, w := range a.Windows {
		windows[i] = Window{Start: w.Start.String(), End: w.End.String()}
	}

	startTimes := make([]string, len(resp.StartTimes))
	for i, t := range resp.StartTimes {
		startTimes[i] = t.String()
	}

	return &AvailabilityResponse{
		ServiceID:       resp.Service.ID,
		ServiceName:     resp.Service.Name,
		Price:           resp.Service.Price,
		DurationMinutes: resp.Service.DurationMinutes,
		Date:            a.Date.Format(domain.DateFormat),
		Open:            a.IsOpen(),
		Windows:         windows,
		BookingLimit:    a.BookingLimit,
		Booked:          a.Booked,
		Remaining:       a.Remaining(),
		StartTimes:      startTimes,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(serviceIDStr, dateStr string) (*getAvailability.Request, error) {
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
