package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса доступности услуги на дату
type Request struct {
	ServiceID int64
	Date      time.Time
}

// Response модель ответа
type Response struct {
	Service      *domain.Service
	Availability domain.Availability
	StartTimes   []types.TimeString // возможные времена начала с шагом длительности услуги
}
