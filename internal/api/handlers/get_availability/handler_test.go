package get_availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newRouter(store *memstore.Store) *mux.Router {
	log := logger.Nop()
	uc := getAvailability.NewUseCase(store.Services(), store.Ledger(), log, time.UTC).
		WithTimeProvider(fixedClock{now: time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)})

	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}/availability", NewHandler(uc, log).Handle).Methods(http.MethodGet)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OpenDay(t *testing.T) {
	store := memstore.Seeded()
	store.AddBooking(domain.Booking{
		ClientDNI:  memstore.ClientDNI,
		CompanyCIF: memstore.CompanyCIF,
		ServiceID:  memstore.MondayServiceID,
		Date:       time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		Time:       types.MustTimeString("10:00"),
		Status:     domain.StatusPending,
	})

	rec := get(newRouter(store), "/services/2/availability?date=2025-10-13")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Tinte", resp.ServiceName)
	assert.True(t, resp.Open)
	assert.Equal(t, 2, resp.BookingLimit)
	assert.Equal(t, 1, resp.Booked)
	assert.Equal(t, 1, resp.Remaining)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, Window{Start: "09:00", End: "18:00"}, resp.Windows[0])
	assert.Equal(t, "40", resp.Price.String())
	require.NotEmpty(t, resp.StartTimes)
	assert.Equal(t, "09:00", resp.StartTimes[0])
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		wantCode int
	}{
		{name: "missing date", target: "/services/1/availability", wantCode: http.StatusBadRequest},
		{name: "malformed date", target: "/services/1/availability?date=13-10-2025", wantCode: http.StatusBadRequest},
		{name: "malformed service id", target: "/services/x/availability?date=2025-10-13", wantCode: http.StatusBadRequest},
		{name: "past date", target: "/services/1/availability?date=2025-10-09", wantCode: http.StatusBadRequest},
		{name: "unknown service", target: "/services/99/availability?date=2025-10-13", wantCode: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(newRouter(memstore.Seeded()), tc.target)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}
