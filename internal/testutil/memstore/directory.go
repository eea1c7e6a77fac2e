package memstore

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/directory"
)

// Clients фейк directory.ClientRepository
type Clients struct{ s *Store }

// Companies фейк directory.CompanyRepository
type Companies struct{ s *Store }

// Services фейк directory.ServiceRepository
type Services struct{ s *Store }

func (s *Store) Clients() *Clients     { return &Clients{s: s} }
func (s *Store) Companies() *Companies { return &Companies{s: s} }
func (s *Store) Services() *Services   { return &Services{s: s} }

func (c *Clients) Exists(_ context.Context, dni string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	_, ok := c.s.clients[dni]
	return ok, nil
}

func (c *Clients) GetByDNI(_ context.Context, dni string) (*domain.Client, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	client, ok := c.s.clients[dni]
	if !ok {
		return nil, directory.ErrClientNotFound
	}
	return &client, nil
}

func (c *Companies) Exists(_ context.Context, cif string) (bool, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	_, ok := c.s.companies[cif]
	return ok, nil
}

func (c *Companies) GetByCIF(_ context.Context, cif string) (*domain.Company, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	company, ok := c.s.companies[cif]
	if !ok {
		return nil, directory.ErrCompanyNotFound
	}
	return &company, nil
}

func (r *Services) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.services[id]
	return ok, nil
}

func (r *Services) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, directory.ErrServiceNotFound
	}
	svc = cloneService(svc)
	return &svc, nil
}
