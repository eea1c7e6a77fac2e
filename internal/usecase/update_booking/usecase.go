package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/directory"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
)

// UseCase use case для изменения бронирования
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

// Execute выполняет use case изменения бронирования.
// Допуск проверяется для итогового состояния брони, если она остается активной.
// Если услуга и дата не меняются, сама бронь не учитывается при подсчете вместимости.
// При отказе запись остается без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed for id=%d: %v", req.ID, err)
		return nil, err
	}
	patch := normalizePatch(req.Patch)

	// 2. Бронирование должно существовать
	current, err := uc.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// 3. Новые клиент, компания и услуга должны существовать
	if err := uc.checkDirectories(ctx, current, patch); err != nil {
		return nil, err
	}

	var (
		updated     domain.Booking
		serviceName string
	)

	// 4. Перечитываем под блокировкой, проверяем допуск и сохраняем
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		stored, err := uc.load(txCtx, req.ID)
		if err != nil {
			return err
		}

		updated = patch.ApplyTo(*stored)

		// неактивная бронь не занимает места, допуск не нужен
		if !updated.IsActive() {
			name, err := uc.serviceName(txCtx, updated.ServiceID)
			if err != nil {
				return err
			}
			serviceName = name
			return uc.save(txCtx, &updated)
		}

		if err := uc.bookingRepo.LockServiceDate(txCtx, updated.ServiceID, updated.Date); err != nil {
			uc.logger.Error("UpdateBooking: failed to lock service=%d date=%s: %v",
				updated.ServiceID, updated.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to lock service date: %v", ErrInternal, err)
		}

		candidate := admission.Candidate{
			ServiceID: updated.ServiceID,
			Date:      updated.Date,
			Time:      updated.Time,
		}
		if updated.SameSlot(stored) {
			candidate.ExcludeBookingID = &stored.ID
		}

		service, err := uc.rule.Admit(txCtx, candidate)
		if err != nil {
			if admission.IsRejection(err) {
				uc.logger.Warn("UpdateBooking: rejected id=%d service=%d date=%s time=%s: %v",
					req.ID, updated.ServiceID, updated.Date.Format(domain.DateFormat), updated.Time, err)
				return err
			}
			uc.logger.Error("UpdateBooking: admission failed for id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: admission failed: %v", ErrInternal, err)
		}
		serviceName = service.Name

		return uc.save(txCtx, &updated)
	})

	if err != nil {
		if errors.Is(err, admission.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", updated.ID)

	// 5. Уведомление клиента (после изменения)
	uc.notify(ctx, &updated, serviceName)

	return &Response{
		Message:     SuccessMessage,
		Booking:     &updated,
		ServiceName: serviceName,
	}, nil
}

func (uc *UseCase) save(ctx context.Context, b *domain.Booking) error {
	if err := uc.bookingRepo.Update(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to update id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) serviceName(ctx context.Context, serviceID int64) (string, error) {
	service, err := uc.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, directory.ErrServiceNotFound) {
			return "", ErrServiceNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get service=%d: %v", serviceID, err)
		return "", fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service.Name, nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkDirectories проверяет только поля, которые патч действительно меняет
func (uc *UseCase) checkDirectories(ctx context.Context, current *domain.Booking, patch domain.BookingPatch) error {
	if patch.ClientDNI != nil && *patch.ClientDNI != current.ClientDNI {
		found, err := uc.clients.Exists(ctx, *patch.ClientDNI)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check client=%s: %v", *patch.ClientDNI, err)
			return fmt.Errorf("%w: failed to check client: %v", ErrInternal, err)
		}
		if !found {
			uc.logger.Warn("UpdateBooking: client=%s not found", *patch.ClientDNI)
			return ErrClientNotFound
		}
	}

	if patch.CompanyCIF != nil && *patch.CompanyCIF != current.CompanyCIF {
		found, err := uc.companies.Exists(ctx, *patch.CompanyCIF)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check company=%s: %v", *patch.CompanyCIF, err)
			return fmt.Errorf("%w: failed to check company: %v", ErrInternal, err)
		}
		if !found {
			uc.logger.Warn("UpdateBooking: company=%s not found", *patch.CompanyCIF)
			return ErrCompanyNotFound
		}
	}

	if patch.ServiceID != nil && *patch.ServiceID != current.ServiceID {
		found, err := uc.services.Exists(ctx, *patch.ServiceID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check service=%d: %v", *patch.ServiceID, err)
			return fmt.Errorf("%w: failed to check service: %v", ErrInternal, err)
		}
		if !found {
			uc.logger.Warn("UpdateBooking: service=%d not found", *patch.ServiceID)
			return ErrServiceNotFound
		}
	}

	return nil
}

func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, serviceName string) {
	_, err := uc.notifier.Notify(
		ctx,
		domain.ClientRecipient(b.ClientDNI),
		notifications.BookingUpdatedMessage(b, serviceName),
		domain.NotificationInfo,
	)
	if err != nil {
		uc.logger.Warn("UpdateBooking: notification for booking id=%d not fully delivered: %v", b.ID, err)
	}
}
