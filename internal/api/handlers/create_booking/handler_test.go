package create_booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func newRouter(store *memstore.Store) *mux.Router {
	log := logger.Nop()
	ledger := store.Ledger()
	dispatcher := notifications.NewDispatcher(
		store.NotificationLog(), store.Clients(), store.Companies(), memstore.NewMailer(), nil, log,
		notifications.Config{AppName: "Reservas"},
	)
	uc := createBooking.NewUseCase(
		ledger, store.Clients(), store.Companies(), store.Services(),
		admission.NewRule(store.Services(), ledger, nil),
		dispatcher, memstore.NewTxManager(), log,
	)

	r := mux.NewRouter()
	r.HandleFunc("/bookings", NewHandler(uc, log).Handle).Methods(http.MethodPost)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const validBody = `{"clientDni":"12345678Z","companyCif":"B12345678","serviceId":1,"date":"2025-10-13","time":"10:00","status":"PENDIENTE"}`

func TestHandler_Created(t *testing.T) {
	store := memstore.Seeded()

	rec := post(newRouter(store), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "2025-10-13", resp.BookingDate)
	assert.Equal(t, "10:00", resp.BookingTime)
	assert.Equal(t, "PENDIENTE", resp.Status)
	assert.Equal(t, "Corte de pelo", resp.ServiceName)
}

func TestHandler_CapacityRejection(t *testing.T) {
	r := newRouter(memstore.Seeded())
	require.Equal(t, http.StatusCreated, post(r, validBody).Code)

	rec := post(r, strings.Replace(validBody, "10:00", "16:00", 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decodeError(t, rec)
	assert.Equal(t, handlers.KindBadRequest, errResp.Kind)
	assert.Equal(t, "capacity limit reached", errResp.Message)
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
		wantKind string
	}{
		{
			name:     "outside schedule",
			body:     strings.Replace(validBody, "10:00", "19:00", 1),
			wantCode: http.StatusBadRequest,
			wantKind: handlers.KindBadRequest,
		},
		{
			name:     "unknown client",
			body:     strings.Replace(validBody, "12345678Z", "00000000T", 1),
			wantCode: http.StatusNotFound,
			wantKind: handlers.KindNotFound,
		},
		{
			name:     "unknown service",
			body:     strings.Replace(validBody, `"serviceId":1`, `"serviceId":99`, 1),
			wantCode: http.StatusNotFound,
			wantKind: handlers.KindNotFound,
		},
		{
			name:     "malformed date",
			body:     strings.Replace(validBody, "2025-10-13", "13/10/2025", 1),
			wantCode: http.StatusBadRequest,
			wantKind: handlers.KindBadRequest,
		},
		{
			name:     "unknown status",
			body:     strings.Replace(validBody, "PENDIENTE", "ABIERTA", 1),
			wantCode: http.StatusBadRequest,
			wantKind: handlers.KindBadRequest,
		},
		{
			name:     "missing field",
			body:     `{"clientDni":"12345678Z","serviceId":1,"date":"2025-10-13","time":"10:00","status":"PENDIENTE"}`,
			wantCode: http.StatusBadRequest,
			wantKind: handlers.KindBadRequest,
		},
		{
			name:     "unknown field",
			body:     strings.Replace(validBody, `"status"`, `"price":10,"status"`, 1),
			wantCode: http.StatusBadRequest,
			wantKind: handlers.KindBadRequest,
		},
		{
			name:     "empty body",
			body:     "",
			wantCode: http.StatusBadRequest,
			wantKind: handlers.KindBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.Seeded()

			rec := post(newRouter(store), tc.body)

			assert.Equal(t, tc.wantCode, rec.Code)
			errResp := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, errResp.Code)
			assert.Equal(t, tc.wantKind, errResp.Kind)
			assert.NotEmpty(t, errResp.Message)
			assert.Empty(t, store.Bookings())
		})
	}
}
