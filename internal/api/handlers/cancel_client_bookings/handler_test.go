package cancel_client_bookings

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
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestHandler(t *testing.T) {
	store := memstore.Seeded()
	log := logger.Nop()
	svc := bookingsService.NewService(store.Ledger(), store.Clients(), store.Companies(), log)

	r := mux.NewRouter()
	r.HandleFunc("/clients/{dni}/bookings", NewHandler(svc, log).Handle).Methods(http.MethodDelete)

	for i, dni := range []string{memstore.ClientDNI, memstore.ClientDNI, memstore.OtherClientDNI} {
		store.AddBooking(domain.Booking{
			ClientDNI:  dni,
			CompanyCIF: memstore.CompanyCIF,
			ServiceID:  memstore.MondayServiceID,
			Date:       time.Date(2025, 10, 13+7*i, 0, 0, 0, 0, time.UTC),
			Time:       types.MustTimeString("10:00"),
			Status:     domain.StatusPending,
		})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/clients/"+memstore.ClientDNI+"/bookings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.DeletedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Deleted)
	require.Len(t, store.Bookings(), 1)
	assert.Equal(t, memstore.OtherClientDNI, store.Bookings()[0].ClientDNI)

	// неизвестный клиент
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/clients/00000000T/bookings", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, store.Bookings(), 1)
}
