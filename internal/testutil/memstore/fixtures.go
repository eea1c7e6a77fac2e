package memstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Ключи тестовых записей справочников
const (
	ClientDNI      = "12345678Z"
	OtherClientDNI = "87654321X"
	CompanyCIF     = "B12345678"

	// WeekdayServiceID лимит 1, окно пн-пт 09:00-18:00
	WeekdayServiceID int64 = 1
	// MondayServiceID лимит 2, окно только пн 09:00-18:00
	MondayServiceID int64 = 2
	// UnscheduledServiceID услуга без расписания
	UnscheduledServiceID int64 = 3
)

// Seeded возвращает хранилище с двумя клиентами, компанией и тремя услугами
func Seeded() *Store {
	s := New()

	s.AddClient(domain.Client{DNI: ClientDNI, Name: "Ana", Surname: "García", Email: "ana@example.com"})
	s.AddClient(domain.Client{DNI: OtherClientDNI, Name: "Luis", Surname: "Pérez", Email: "luis@example.com"})
	s.AddCompany(domain.Company{CIF: CompanyCIF, Name: "Peluquería Sol", ContactName: "Marta", Email: "contacto@sol.example.com"})

	s.AddService(domain.Service{
		ID:              WeekdayServiceID,
		Name:            "Corte de pelo",
		DurationMinutes: 30,
		Price:           decimal.RequireFromString("15.50"),
		BookingLimit:    1,
		CompanyCIF:      CompanyCIF,
		Schedules: []domain.Schedule{{
			ID:         1,
			Weekdays:   domain.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
			Start:      types.MustTimeString("09:00"),
			End:        types.MustTimeString("18:00"),
			ServiceID:  WeekdayServiceID,
			CompanyCIF: CompanyCIF,
		}},
	})
	s.AddService(domain.Service{
		ID:              MondayServiceID,
		Name:            "Tinte",
		DurationMinutes: 90,
		Price:           decimal.RequireFromString("40"),
		BookingLimit:    2,
		CompanyCIF:      CompanyCIF,
		Schedules: []domain.Schedule{{
			ID:         2,
			Weekdays:   domain.NewWeekdaySet(time.Monday),
			Start:      types.MustTimeString("09:00"),
			End:        types.MustTimeString("18:00"),
			ServiceID:  MondayServiceID,
			CompanyCIF: CompanyCIF,
		}},
	})
	s.AddService(domain.Service{
		ID:              UnscheduledServiceID,
		Name:            "Peinado",
		DurationMinutes: 45,
		Price:           decimal.RequireFromString("25"),
		BookingLimit:    3,
		CompanyCIF:      CompanyCIF,
	})

	return s
}
