// Package memstore хранилище в памяти для тестов usecase и обработчиков.
// Повторяет контракты репозиториев PostgreSQL, включая
// транзакционную блокировку пары (услуга, дата).
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type lockKey struct {
	serviceID int64
	date      string
}

// Store общее состояние всех фейковых репозиториев
type Store struct {
	mu sync.Mutex

	clients       map[string]domain.Client
	companies     map[string]domain.Company
	services      map[int64]domain.Service
	bookings      map[int64]domain.Booking
	notifications []domain.Notification

	nextBookingID      int64
	nextNotificationID int64

	locks map[lockKey]*sync.Mutex

	// FailNotifications если задано, сохранение уведомлений возвращает эту ошибку
	FailNotifications error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		clients:   make(map[string]domain.Client),
		companies: make(map[string]domain.Company),
		services:  make(map[int64]domain.Service),
		bookings:  make(map[int64]domain.Booking),
		locks:     make(map[lockKey]*sync.Mutex),
	}
}

// AddClient добавляет клиента в справочник
func (s *Store) AddClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.DNI] = c
}

// AddCompany добавляет компанию в справочник
func (s *Store) AddCompany(c domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.CIF] = c
}

// AddService добавляет услугу в каталог
func (s *Store) AddService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = cloneService(svc)
}

// AddBooking сохраняет бронирование в обход правил допуска и возвращает его с ID
func (s *Store) AddBooking(b domain.Booking) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertBooking(b)
}

// Booking возвращает бронирование по ID
func (s *Store) Booking(id int64) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

// Bookings возвращает все бронирования по возрастанию ID
func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Notifications возвращает сохраненные уведомления в порядке создания
func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) insertBooking(b domain.Booking) domain.Booking {
	s.nextBookingID++
	now := time.Now()

	b.ID = s.nextBookingID
	b.Date = domain.DateOnly(b.Date)
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = b

	return b
}

func (s *Store) lockFor(key lockKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

func cloneService(svc domain.Service) domain.Service {
	schedules := make([]domain.Schedule, len(svc.Schedules))
	copy(schedules, svc.Schedules)
	svc.Schedules = schedules
	return svc
}
