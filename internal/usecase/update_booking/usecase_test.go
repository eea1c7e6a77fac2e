package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	"github.com/m04kA/SMC-ReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	monday  = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store  *memstore.Store
	mailer *memstore.Mailer
	uc     *UseCase
}

func newFixture() *fixture {
	store := memstore.Seeded()
	mailer := memstore.NewMailer()
	log := logger.Nop()

	ledger := store.Ledger()
	dispatcher := notifications.NewDispatcher(
		store.NotificationLog(), store.Clients(), store.Companies(), mailer, nil, log,
		notifications.Config{AppName: "Reservas"},
	)

	uc := NewUseCase(
		ledger,
		store.Clients(),
		store.Companies(),
		store.Services(),
		admission.NewRule(store.Services(), ledger, nil),
		dispatcher,
		memstore.NewTxManager(),
		log,
	)

	return &fixture{store: store, mailer: mailer, uc: uc}
}

func (f *fixture) book(serviceID int64, date time.Time, at string) domain.Booking {
	return f.store.AddBooking(domain.Booking{
		ClientDNI:  memstore.ClientDNI,
		CompanyCIF: memstore.CompanyCIF,
		ServiceID:  serviceID,
		Date:       date,
		Time:       types.MustTimeString(at),
		Status:     domain.StatusPending,
	})
}

func TestUseCase_Execute_MoveToFullDateRejected(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")
	f.book(memstore.WeekdayServiceID, tuesday, "11:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:    original.ID,
		Patch: domain.BookingPatch{Date: ptr.Ptr(tuesday)},
	})

	assert.ErrorIs(t, err, admission.ErrCapacityReached)

	stored, ok := f.store.Booking(original.ID)
	require.True(t, ok)
	assert.Equal(t, original, stored)
	assert.Empty(t, f.store.Notifications())
}

func TestUseCase_Execute_InPlaceEditDoesNotCountItself(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID: original.ID,
		Patch: domain.BookingPatch{
			Status: ptr.Ptr(domain.StatusConfirmed),
			Time:   ptr.Ptr(types.MustTimeString("16:30")),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, SuccessMessage, resp.Message)
	assert.Equal(t, "Corte de pelo", resp.ServiceName)

	stored, _ := f.store.Booking(original.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, types.TimeString("16:30"), stored.Time)
	assert.Equal(t, monday, stored.Date)
	assert.Len(t, f.store.Bookings(), 1)
}

func TestUseCase_Execute_MoveToFreeDate(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:    original.ID,
		Patch: domain.BookingPatch{Date: ptr.Ptr(tuesday)},
	})

	require.NoError(t, err)
	assert.Equal(t, tuesday, resp.Booking.Date)

	// понедельник освободился
	count, err := f.store.Ledger().CountByServiceAndDate(context.Background(), memstore.WeekdayServiceID, monday, nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	notes := f.store.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationInfo, notes[0].Type)
	assert.Contains(t, notes[0].Message, "14/10/2025")
	require.Len(t, f.mailer.Sent(), 1)
}

func TestUseCase_Execute_ServiceChangeRechecksSchedule(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, tuesday, "10:00")

	// услуга 2 работает только по понедельникам
	_, err := f.uc.Execute(context.Background(), &Request{
		ID:    original.ID,
		Patch: domain.BookingPatch{ServiceID: ptr.Ptr(memstore.MondayServiceID)},
	})

	assert.ErrorIs(t, err, admission.ErrOutsideSchedule)
	stored, _ := f.store.Booking(original.ID)
	assert.Equal(t, memstore.WeekdayServiceID, stored.ServiceID)
}

func TestUseCase_Execute_NotifiesNewClient(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:    original.ID,
		Patch: domain.BookingPatch{ClientDNI: ptr.Ptr(" " + memstore.OtherClientDNI + " ")},
	})

	require.NoError(t, err)
	stored, _ := f.store.Booking(original.ID)
	assert.Equal(t, memstore.OtherClientDNI, stored.ClientDNI)

	require.Len(t, f.mailer.Sent(), 1)
	assert.Equal(t, "luis@example.com", f.mailer.Sent()[0].To)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")

	cases := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "booking",
			req:     &Request{ID: 999, Patch: domain.BookingPatch{Status: ptr.Ptr(domain.StatusConfirmed)}},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "client",
			req:     &Request{ID: original.ID, Patch: domain.BookingPatch{ClientDNI: ptr.Ptr("00000000T")}},
			wantErr: ErrClientNotFound,
		},
		{
			name:    "company",
			req:     &Request{ID: original.ID, Patch: domain.BookingPatch{CompanyCIF: ptr.Ptr("B00000000")}},
			wantErr: ErrCompanyNotFound,
		},
		{
			name:    "service",
			req:     &Request{ID: original.ID, Patch: domain.BookingPatch{ServiceID: ptr.Ptr(int64(404))}},
			wantErr: ErrServiceNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	stored, _ := f.store.Booking(original.ID)
	assert.Equal(t, original, stored)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")

	cases := []struct {
		name  string
		patch domain.BookingPatch
	}{
		{name: "empty patch", patch: domain.BookingPatch{}},
		{name: "blank client", patch: domain.BookingPatch{ClientDNI: ptr.Ptr("  ")}},
		{name: "blank company", patch: domain.BookingPatch{CompanyCIF: ptr.Ptr("")}},
		{name: "zero service", patch: domain.BookingPatch{ServiceID: ptr.Ptr(int64(0))}},
		{name: "zero date", patch: domain.BookingPatch{Date: ptr.Ptr(time.Time{})}},
		{name: "malformed time", patch: domain.BookingPatch{Time: ptr.Ptr(types.TimeString("9:00"))}},
		{name: "unknown status", patch: domain.BookingPatch{Status: ptr.Ptr(domain.BookingStatus("ANULADA"))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{ID: original.ID, Patch: tc.patch})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_CancelOnOverbookedDate(t *testing.T) {
	f := newFixture()
	// лимит услуги 1, но на дату уже две брони (лимит уменьшили позже)
	first := f.book(memstore.WeekdayServiceID, monday, "10:00")
	f.book(memstore.WeekdayServiceID, monday, "12:00")

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:    first.ID,
		Patch: domain.BookingPatch{Status: ptr.Ptr(domain.StatusCancelled)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	assert.Equal(t, "Corte de pelo", resp.ServiceName)

	stored, ok := f.store.Booking(first.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Len(t, f.store.Notifications(), 1)
}

func TestUseCase_Execute_ReactivationRechecksCapacity(t *testing.T) {
	f := newFixture()
	cancelled := f.store.AddBooking(domain.Booking{
		ClientDNI:  memstore.ClientDNI,
		CompanyCIF: memstore.CompanyCIF,
		ServiceID:  memstore.WeekdayServiceID,
		Date:       monday,
		Time:       types.MustTimeString("10:00"),
		Status:     domain.StatusCancelled,
	})
	f.book(memstore.WeekdayServiceID, monday, "12:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:    cancelled.ID,
		Patch: domain.BookingPatch{Status: ptr.Ptr(domain.StatusPending)},
	})

	assert.ErrorIs(t, err, admission.ErrCapacityReached)
	stored, ok := f.store.Booking(cancelled.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestUseCase_Execute_NotificationSurvivesCancelledRequest(t *testing.T) {
	f := newFixture()
	original := f.book(memstore.WeekdayServiceID, monday, "10:00")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Execute(ctx, &Request{
		ID:    original.ID,
		Patch: domain.BookingPatch{Time: ptr.Ptr(types.MustTimeString("11:00"))},
	})

	require.NoError(t, err)
	assert.Len(t, f.store.Notifications(), 1)
}
