package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	clients     ClientDirectory
	companies   CompanyDirectory
	services    ServiceDirectory
	rule        AdmissionRule
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clients ClientDirectory,
	companies CompanyDirectory,
	services ServiceDirectory,
	rule AdmissionRule,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		clients:     clients,
		companies:   companies,
		services:    services,
		rule:        rule,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Подсчет и вставка идут в одной транзакции под блокировкой пары (услуга, дата),
// поэтому параллельные запросы не могут превысить лимит услуги.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, company=%s, service=%d, date=%s, time=%s",
		req.ClientDNI, req.CompanyCIF, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	clientDNI := strings.TrimSpace(req.ClientDNI)
	companyCIF := strings.TrimSpace(req.CompanyCIF)
	date := domain.DateOnly(req.Date)

	// 2. Проверяем справочники до любой записи
	if err := uc.checkDirectories(ctx, clientDNI, companyCIF, req.ServiceID); err != nil {
		return nil, err
	}

	var (
		created     *domain.Booking
		serviceName string
	)

	// 3. Блокировка, допуск и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockServiceDate(txCtx, req.ServiceID, date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock service=%d date=%s: %v", req.ServiceID, date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to lock service date: %v", ErrInternal, err)
		}

		service, err := uc.rule.Admit(txCtx, admission.Candidate{
			ServiceID: req.ServiceID,
			Date:      date,
			Time:      req.Time,
		})
		if err != nil {
			if admission.IsRejection(err) {
				uc.logger.Warn("CreateBooking: rejected service=%d date=%s time=%s: %v",
					req.ServiceID, date.Format(domain.DateFormat), req.Time, err)
				return err
			}
			uc.logger.Error("CreateBooking: admission failed: %v", err)
			return fmt.Errorf("%w: admission failed: %v", ErrInternal, err)
		}
		serviceName = service.Name

		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientDNI:  clientDNI,
			CompanyCIF: companyCIF,
			ServiceID:  req.ServiceID,
			Date:       date,
			Time:       req.Time,
			Status:     req.Status,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, admission.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 4. Уведомление клиента после фиксации транзакции
	uc.notify(ctx, created, serviceName)

	return &Response{
		Booking:     created,
		ServiceName: serviceName,
	}, nil
}

func (uc *UseCase) checkDirectories(ctx context.Context, clientDNI, companyCIF string, serviceID int64) error {
	found, err := uc.clients.Exists(ctx, clientDNI)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check client=%s: %v", clientDNI, err)
		return fmt.Errorf("%w: failed to check client: %v", ErrInternal, err)
	}
	if !found {
		uc.logger.Warn("CreateBooking: client=%s not found", clientDNI)
		return ErrClientNotFound
	}

	found, err = uc.companies.Exists(ctx, companyCIF)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check company=%s: %v", companyCIF, err)
		return fmt.Errorf("%w: failed to check company: %v", ErrInternal, err)
	}
	if !found {
		uc.logger.Warn("CreateBooking: company=%s not found", companyCIF)
		return ErrCompanyNotFound
	}

	found, err = uc.services.Exists(ctx, serviceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: failed to check service: %v", ErrInternal, err)
	}
	if !found {
		uc.logger.Warn("CreateBooking: service=%d not found", serviceID)
		return ErrServiceNotFound
	}

	return nil
}

// notify ошибки уведомления только логируются, бронирование уже сохранено
func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, serviceName string) {
	_, err := uc.notifier.Notify(
		ctx,
		domain.ClientRecipient(b.ClientDNI),
		notifications.BookingCreatedMessage(b, serviceName),
		domain.NotificationInfo,
	)
	if err != nil {
		uc.logger.Warn("CreateBooking: notification for booking id=%d not fully delivered: %v", b.ID, err)
	}
}
