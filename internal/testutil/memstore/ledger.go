package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// Ledger фейк booking.Repository
type Ledger struct {
	s *Store

	// FailCount если задано, подсчет бронирований возвращает эту ошибку
	FailCount error
}

// Ledger возвращает репозиторий бронирований поверх хранилища
func (s *Store) Ledger() *Ledger {
	return &Ledger{s: s}
}

func (l *Ledger) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	created := l.s.insertBooking(*b)
	*b = created
	return b, nil
}

func (l *Ledger) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	b, ok := l.s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

func (l *Ledger) Update(_ context.Context, b *domain.Booking) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	existing, ok := l.s.bookings[b.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}

	b.Date = domain.DateOnly(b.Date)
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now()
	l.s.bookings[b.ID] = *b
	return nil
}

func (l *Ledger) Delete(_ context.Context, id int64) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if _, ok := l.s.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(l.s.bookings, id)
	return nil
}

func (l *Ledger) DeleteByClient(_ context.Context, dni string) (int64, error) {
	return l.deleteWhere(func(b domain.Booking) bool { return b.ClientDNI == dni }), nil
}

func (l *Ledger) DeleteByCompany(_ context.Context, cif string) (int64, error) {
	return l.deleteWhere(func(b domain.Booking) bool { return b.CompanyCIF == cif }), nil
}

func (l *Ledger) GetByClient(_ context.Context, dni string) ([]*domain.Booking, error) {
	return l.listWhere(func(b domain.Booking) bool { return b.ClientDNI == dni }, true), nil
}

func (l *Ledger) GetByCompany(_ context.Context, cif string) ([]*domain.Booking, error) {
	return l.listWhere(func(b domain.Booking) bool { return b.CompanyCIF == cif }, true), nil
}

func (l *Ledger) GetActiveByDateRange(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	return l.listWhere(func(b domain.Booking) bool {
		return b.IsActive() && !b.Date.Before(from) && !b.Date.After(to)
	}, false), nil
}

func (l *Ledger) CountByServiceAndDate(_ context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error) {
	if l.FailCount != nil {
		return 0, l.FailCount
	}

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	count := 0
	for _, b := range l.s.bookings {
		if b.ServiceID != serviceID || !domain.SameDate(b.Date, date) || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

// LockServiceDate держит блокировку пары (услуга, дата) до конца транзакции из ctx
func (l *Ledger) LockServiceDate(ctx context.Context, serviceID int64, date time.Time) error {
	t, ok := txFromContext(ctx)
	if !ok {
		return booking.ErrNotInTransaction
	}

	key := lockKey{serviceID: serviceID, date: domain.DateOnly(date).Format(domain.DateFormat)}
	t.acquire(key, l.s.lockFor(key))
	return nil
}

func (l *Ledger) deleteWhere(match func(domain.Booking) bool) int64 {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	var deleted int64
	for id, b := range l.s.bookings {
		if match(b) {
			delete(l.s.bookings, id)
			deleted++
		}
	}
	return deleted
}

func (l *Ledger) listWhere(match func(domain.Booking) bool, newestFirst bool) []*domain.Booking {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range l.s.bookings {
		if match(b) {
			b := b
			out = append(out, &b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date) != newestFirst
		}
		if a.Time != b.Time {
			return a.Time.IsBefore(b.Time) != newestFirst
		}
		return a.ID < b.ID
	})
	return out
}
