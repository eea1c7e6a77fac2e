package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func newTestService(store *memstore.Store) *Service {
	return NewService(store.Ledger(), store.Clients(), store.Companies(), logger.Nop())
}

func seed(store *memstore.Store, dni string, day int, at string) domain.Booking {
	return store.AddBooking(domain.Booking{
		ClientDNI:  dni,
		CompanyCIF: memstore.CompanyCIF,
		ServiceID:  memstore.WeekdayServiceID,
		Date:       time.Date(2025, 10, day, 0, 0, 0, 0, time.UTC),
		Time:       types.MustTimeString(at),
		Status:     domain.StatusConfirmed,
	})
}

func TestService_GetByID(t *testing.T) {
	store := memstore.Seeded()
	b := seed(store, memstore.ClientDNI, 13, "10:00")
	svc := newTestService(store)

	resp, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, "2025-10-13", resp.BookingDate)
	assert.Equal(t, "10:00", resp.BookingTime)
	assert.Equal(t, "CONFIRMADA", resp.Status)

	// повторное чтение дает тот же результат
	again, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, resp, again)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetClientBookings_NewestFirst(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, 13, "10:00")
	seed(store, memstore.ClientDNI, 15, "09:00")
	seed(store, memstore.ClientDNI, 15, "12:00")
	seed(store, memstore.OtherClientDNI, 14, "10:00")

	resp, err := newTestService(store).GetClientBookings(context.Background(), memstore.ClientDNI)

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, "2025-10-15", resp.Bookings[0].BookingDate)
	assert.Equal(t, "12:00", resp.Bookings[0].BookingTime)
	assert.Equal(t, "2025-10-13", resp.Bookings[2].BookingDate)
}

func TestService_GetClientBookings_UnknownClient(t *testing.T) {
	store := memstore.Seeded()

	_, err := newTestService(store).GetClientBookings(context.Background(), "00000000T")
	assert.ErrorIs(t, err, ErrClientNotFound)

	resp, err := newTestService(store).GetClientBookings(context.Background(), memstore.OtherClientDNI)
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestService_GetCompanyBookings(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, 13, "10:00")
	seed(store, memstore.OtherClientDNI, 14, "10:00")
	svc := newTestService(store)

	resp, err := svc.GetCompanyBookings(context.Background(), memstore.CompanyCIF)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.GetCompanyBookings(context.Background(), "B00000000")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestService_DeleteAllForClient(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, 13, "10:00")
	seed(store, memstore.ClientDNI, 14, "10:00")
	kept := seed(store, memstore.OtherClientDNI, 14, "11:00")
	svc := newTestService(store)

	resp, err := svc.DeleteAllForClient(context.Background(), memstore.ClientDNI)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)

	remaining := store.Bookings()
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
	assert.Empty(t, store.Notifications())

	resp, err = svc.DeleteAllForClient(context.Background(), memstore.ClientDNI)
	require.NoError(t, err)
	assert.Zero(t, resp.Deleted)
}

func TestService_DeleteAll_BadOwner(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, 13, "10:00")
	svc := newTestService(store)

	_, err := svc.DeleteAllForClient(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.DeleteAllForClient(context.Background(), "00000000T")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.DeleteAllForCompany(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.DeleteAllForCompany(context.Background(), "B00000000")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Len(t, store.Bookings(), 1)
}

func TestService_DeleteAllForCompany(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, 13, "10:00")
	seed(store, memstore.OtherClientDNI, 14, "10:00")

	resp, err := newTestService(store).DeleteAllForCompany(context.Background(), memstore.CompanyCIF)

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Empty(t, store.Bookings())
}
