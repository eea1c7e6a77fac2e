package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func newUseCase(store *memstore.Store, mailer *memstore.Mailer) *UseCase {
	log := logger.Nop()
	dispatcher := notifications.NewDispatcher(
		store.NotificationLog(), store.Clients(), store.Companies(), mailer, nil, log,
		notifications.Config{AppName: "Reservas"},
	)
	return NewUseCase(store.Ledger(), dispatcher, log)
}

func seedBooking(store *memstore.Store) domain.Booking {
	return store.AddBooking(domain.Booking{
		ClientDNI:  memstore.ClientDNI,
		CompanyCIF: memstore.CompanyCIF,
		ServiceID:  memstore.WeekdayServiceID,
		Date:       time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
		Status:     domain.StatusConfirmed,
	})
}

func TestUseCase_Execute_RemovesAndNotifies(t *testing.T) {
	store := memstore.Seeded()
	mailer := memstore.NewMailer()
	booking := seedBooking(store)

	cancelled, err := newUseCase(store, mailer).Execute(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.Equal(t, booking.ID, cancelled.ID)
	assert.Empty(t, store.Bookings())

	notes := store.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationWarning, notes[0].Type)
	require.NotNil(t, notes[0].ClientDNI)
	assert.Equal(t, memstore.ClientDNI, *notes[0].ClientDNI)
	assert.Contains(t, notes[0].Message, "cancelada")
	assert.Equal(t, 1, mailer.Attempts())
}

func TestUseCase_Execute_DeliveryFailureStillCancels(t *testing.T) {
	store := memstore.Seeded()
	mailer := memstore.NewMailer()
	mailer.SetErr(errors.New("smtp: timeout"))
	booking := seedBooking(store)

	_, err := newUseCase(store, mailer).Execute(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.Empty(t, store.Bookings())
	require.Len(t, store.Notifications(), 1)
	assert.False(t, store.Notifications()[0].EmailSent)
	assert.Equal(t, 1, mailer.Attempts())
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	store := memstore.Seeded()
	mailer := memstore.NewMailer()

	_, err := newUseCase(store, mailer).Execute(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, store.Notifications())
	assert.Zero(t, mailer.Attempts())
}

func TestUseCase_Execute_InvalidID(t *testing.T) {
	store := memstore.Seeded()

	_, err := newUseCase(store, memstore.NewMailer()).Execute(context.Background(), 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_NotificationSurvivesCancelledRequest(t *testing.T) {
	store := memstore.Seeded()
	booking := seedBooking(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newUseCase(store, memstore.NewMailer()).Execute(ctx, booking.ID)

	require.NoError(t, err)
	assert.Empty(t, store.Bookings())
	assert.Len(t, store.Notifications(), 1)
}
