package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type remindersStub struct{ total int }

func (r *remindersStub) RecordReminders(n int) { r.total += n }

var (
	madrid = time.FixedZone("CEST", 2*60*60)
	today  = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
)

func newUseCase(store *memstore.Store, mailer *memstore.Mailer, m MetricsRecorder, now time.Time) *UseCase {
	log := logger.Nop()
	dispatcher := notifications.NewDispatcher(
		store.NotificationLog(), store.Clients(), store.Companies(), mailer, nil, log,
		notifications.Config{AppName: "Reservas"},
	)
	return NewUseCase(store.Ledger(), dispatcher, m, log, Config{WindowDays: 1, Location: madrid}).
		WithTimeProvider(fixedClock{t: now})
}

func seed(store *memstore.Store, dni string, date time.Time, status domain.BookingStatus) domain.Booking {
	return store.AddBooking(domain.Booking{
		ClientDNI:  dni,
		CompanyCIF: memstore.CompanyCIF,
		ServiceID:  memstore.WeekdayServiceID,
		Date:       date,
		Time:       "10:00",
		Status:     status,
	})
}

func TestUseCase_Execute_OnlyBookingsInWindow(t *testing.T) {
	store := memstore.Seeded()
	mailer := memstore.NewMailer()
	metrics := &remindersStub{}

	due := seed(store, memstore.ClientDNI, today, domain.StatusConfirmed)
	seed(store, memstore.OtherClientDNI, today.AddDate(0, 0, 10), domain.StatusConfirmed)

	res, err := newUseCase(store, mailer, metrics, time.Date(2025, 10, 13, 6, 0, 0, 0, time.UTC)).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Scanned)
	assert.Equal(t, 1, res.Notified)
	assert.Zero(t, res.Failed)
	assert.Equal(t, 1, metrics.total)

	notes := store.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationInfo, notes[0].Type)
	assert.Equal(t, memstore.ClientDNI, *notes[0].ClientDNI)
	assert.Contains(t, notes[0].Message, "13/10/2025")
	assert.Contains(t, notes[0].Message, fmt.Sprintf("#%d", due.ID))

	require.Len(t, mailer.Sent(), 1)
	assert.Equal(t, "ana@example.com", mailer.Sent()[0].To)
}

func TestUseCase_Execute_WindowIncludesTomorrowAndSkipsCancelled(t *testing.T) {
	store := memstore.Seeded()

	seed(store, memstore.ClientDNI, today, domain.StatusPending)
	seed(store, memstore.ClientDNI, today.AddDate(0, 0, 1), domain.StatusConfirmed)
	seed(store, memstore.ClientDNI, today.AddDate(0, 0, 1), domain.StatusCancelled)
	seed(store, memstore.ClientDNI, today.AddDate(0, 0, 2), domain.StatusConfirmed)
	seed(store, memstore.ClientDNI, today.AddDate(0, 0, -1), domain.StatusConfirmed)

	res, err := newUseCase(store, memstore.NewMailer(), nil, time.Date(2025, 10, 13, 6, 0, 0, 0, time.UTC)).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 2, res.Notified)
	assert.Len(t, store.Notifications(), 2)
}

func TestUseCase_Execute_TodayIsTakenInConfiguredZone(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, today.AddDate(0, 0, 1), domain.StatusConfirmed)

	// 23:30 UTC 12-го уже 13-е в зоне +02:00, завтра = 14-е
	res, err := newUseCase(store, memstore.NewMailer(), nil, time.Date(2025, 10, 12, 23, 30, 0, 0, time.UTC)).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, today, res.From)
	assert.Equal(t, today.AddDate(0, 0, 1), res.To)
	assert.Equal(t, 1, res.Notified)
}

func TestUseCase_Execute_CountsDeliveryFailures(t *testing.T) {
	store := memstore.Seeded()
	mailer := memstore.NewMailer()
	mailer.SetErr(errors.New("smtp: 550 mailbox unavailable"))

	seed(store, memstore.ClientDNI, today, domain.StatusConfirmed)
	seed(store, memstore.OtherClientDNI, today, domain.StatusConfirmed)

	res, err := newUseCase(store, mailer, nil, time.Date(2025, 10, 13, 6, 0, 0, 0, time.UTC)).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Notified)
	assert.Equal(t, 2, res.DeliveryFailed)
	assert.Len(t, store.Notifications(), 2)
}

func TestUseCase_Execute_PersistFailureIsCounted(t *testing.T) {
	store := memstore.Seeded()
	store.FailNotifications = errors.New("connection reset")
	seed(store, memstore.ClientDNI, today, domain.StatusConfirmed)

	res, err := newUseCase(store, memstore.NewMailer(), nil, time.Date(2025, 10, 13, 6, 0, 0, 0, time.UTC)).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Zero(t, res.Notified)
}

func TestUseCase_Execute_NotIdempotent(t *testing.T) {
	store := memstore.Seeded()
	seed(store, memstore.ClientDNI, today, domain.StatusConfirmed)
	uc := newUseCase(store, memstore.NewMailer(), nil, time.Date(2025, 10, 13, 6, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.Notifications(), 2)
}
