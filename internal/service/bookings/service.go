package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Service сервис чтения и массового удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	clients     ClientDirectory
	companies   CompanyDirectory
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	clients ClientDirectory,
	companies CompanyDirectory,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		clients:     clients,
		companies:   companies,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings история бронирований клиента, новые первыми
func (s *Service) GetClientBookings(ctx context.Context, dni string) (*models.BookingListResponse, error) {
	dni = strings.TrimSpace(dni)
	s.logger.Info("GetClientBookings: fetching bookings for client=%s", dni)

	if err := s.requireClient(ctx, "GetClientBookings", dni, ErrClientNotFound); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByClient(ctx, dni)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", dni, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%s", len(bookings), dni)
	return models.FromDomainBookingList(bookings), nil
}

// GetCompanyBookings бронирования компании, новые первыми
func (s *Service) GetCompanyBookings(ctx context.Context, cif string) (*models.BookingListResponse, error) {
	cif = strings.TrimSpace(cif)
	s.logger.Info("GetCompanyBookings: fetching bookings for company=%s", cif)

	if err := s.requireCompany(ctx, "GetCompanyBookings", cif, ErrCompanyNotFound); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByCompany(ctx, cif)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%s: %v", cif, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyBookings: successfully fetched %d bookings for company=%s", len(bookings), cif)
	return models.FromDomainBookingList(bookings), nil
}

// DeleteAllForClient удаляет все бронирования клиента без уведомлений.
// Пустой или неизвестный DNI считается некорректным запросом.
func (s *Service) DeleteAllForClient(ctx context.Context, dni string) (*models.DeletedResponse, error) {
	dni = strings.TrimSpace(dni)
	s.logger.Info("DeleteAllForClient: client=%s", dni)

	if err := s.requireClient(ctx, "DeleteAllForClient", dni, ErrInvalidInput); err != nil {
		return nil, err
	}

	deleted, err := s.bookingRepo.DeleteByClient(ctx, dni)
	if err != nil {
		s.logger.Error("DeleteAllForClient: repository error for client=%s: %v", dni, err)
		return nil, fmt.Errorf("%w: DeleteAllForClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAllForClient: deleted %d bookings of client=%s", deleted, dni)
	return &models.DeletedResponse{Deleted: deleted}, nil
}

// DeleteAllForCompany удаляет все бронирования компании без уведомлений
func (s *Service) DeleteAllForCompany(ctx context.Context, cif string) (*models.DeletedResponse, error) {
	cif = strings.TrimSpace(cif)
	s.logger.Info("DeleteAllForCompany: company=%s", cif)

	if err := s.requireCompany(ctx, "DeleteAllForCompany", cif, ErrInvalidInput); err != nil {
		return nil, err
	}

	deleted, err := s.bookingRepo.DeleteByCompany(ctx, cif)
	if err != nil {
		s.logger.Error("DeleteAllForCompany: repository error for company=%s: %v", cif, err)
		return nil, fmt.Errorf("%w: DeleteAllForCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAllForCompany: deleted %d bookings of company=%s", deleted, cif)
	return &models.DeletedResponse{Deleted: deleted}, nil
}

// Вспомогательные методы

// requireClient возвращает missing, если DNI пустой или клиента нет в справочнике
func (s *Service) requireClient(ctx context.Context, op, dni string, missing error) error {
	if dni == "" {
		s.logger.Warn("%s: empty client dni", op)
		return fmt.Errorf("%w: client dni is required", ErrInvalidInput)
	}

	found, err := s.clients.Exists(ctx, dni)
	if err != nil {
		s.logger.Error("%s: failed to check client=%s: %v", op, dni, err)
		return fmt.Errorf("%w: %s - failed to check client: %v", ErrInternal, op, err)
	}
	if !found {
		s.logger.Warn("%s: client=%s not found", op, dni)
		return fmt.Errorf("%w: client %s", missing, dni)
	}
	return nil
}

// requireCompany возвращает missing, если CIF пустой или компании нет в справочнике
func (s *Service) requireCompany(ctx context.Context, op, cif string, missing error) error {
	if cif == "" {
		s.logger.Warn("%s: empty company cif", op)
		return fmt.Errorf("%w: company cif is required", ErrInvalidInput)
	}

	found, err := s.companies.Exists(ctx, cif)
	if err != nil {
		s.logger.Error("%s: failed to check company=%s: %v", op, cif, err)
		return fmt.Errorf("%w: %s - failed to check company: %v", ErrInternal, op, err)
	}
	if !found {
		s.logger.Warn("%s: company=%s not found", op, cif)
		return fmt.Errorf("%w: company %s", missing, cif)
	}
	return nil
}
