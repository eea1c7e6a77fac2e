package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Результаты доставки для метрики email_deliveries_total
const (
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
	DeliverySkipped = "skipped"
)

// notifyTimeout предел на сохранение и отправку одного уведомления
const notifyTimeout = 30 * time.Second

// Config параметры оформления писем
type Config struct {
	AppName string
}

// Dispatcher сохраняет уведомление и пересылает его по почте.
// Сохранение обязательно, отправка письма выполняется по возможности:
// ошибка отправки не откатывает сохраненное уведомление.
type Dispatcher struct {
	repo      NotificationRepository
	clients   ClientDirectory
	companies CompanyDirectory
	gateway   EmailGateway
	metrics   MetricsRecorder
	logger    Logger
	cfg       Config
}

// NewDispatcher создает новый экземпляр диспетчера.
// gateway == nil отключает отправку писем, metrics может быть nil.
func NewDispatcher(
	repo NotificationRepository,
	clients ClientDirectory,
	companies CompanyDirectory,
	gateway EmailGateway,
	metrics MetricsRecorder,
	logger Logger,
	cfg Config,
) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		clients:   clients,
		companies: companies,
		gateway:   gateway,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Notify сохраняет уведомление и пытается отправить письмо адресату.
//
// Ошибка с ErrPersist означает, что ничего не сохранено и не отправлено.
// Ошибка с ErrDeliveryFailed возвращается вместе с сохраненным уведомлением.
//
// Уведомление пишется после фиксации бронирования, поэтому отмена ctx
// (клиент закрыл соединение) не прерывает запись: от ctx берутся только
// значения, срок задает notifyTimeout.
func (d *Dispatcher) Notify(
	ctx context.Context,
	recipient domain.Recipient,
	message string,
	notificationType domain.NotificationType,
) (*domain.Notification, error) {
	notification, err := newNotification(recipient, message, notificationType)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	notification, err = d.repo.Create(ctx, notification)
	if err != nil {
		d.logger.Error("Notify: failed to persist notification for %s=%s: %v", recipient.Kind, recipient.Key, err)
		return nil, fmt.Errorf("%w: Notify - %s=%s: %v", ErrPersist, recipient.Kind, recipient.Key, err)
	}
	d.recordNotification(notification.Type)

	if d.gateway == nil {
		d.recordDelivery(DeliverySkipped)
		d.logger.Info("Notify: notification id=%d stored, email delivery disabled", notification.ID)
		return notification, nil
	}

	if err := d.deliver(ctx, recipient, notification); err != nil {
		d.recordDelivery(DeliveryFailed)
		d.logger.Warn("Notify: notification id=%d stored, email not delivered: %v", notification.ID, err)
		return notification, fmt.Errorf("%w: notification id=%d: %w", ErrDeliveryFailed, notification.ID, err)
	}
	d.recordDelivery(DeliverySent)

	if err := d.repo.MarkEmailSent(ctx, notification.ID); err != nil {
		// письмо уже ушло, флаг останется false
		d.logger.Warn("Notify: failed to mark notification id=%d as emailed: %v", notification.ID, err)
		return notification, nil
	}
	notification.EmailSent = true

	return notification, nil
}

func (d *Dispatcher) deliver(ctx context.Context, recipient domain.Recipient, n *domain.Notification) error {
	address, name, err := d.resolve(ctx, recipient)
	if err != nil {
		return err
	}

	subject, body, err := render(emailData{
		AppName:   d.cfg.AppName,
		Name:      name,
		Message:   n.Message,
		TypeLabel: typeLabels[n.Type],
	})
	if err != nil {
		return err
	}

	return d.gateway.Send(ctx, address, subject, body)
}

// resolve возвращает адрес и имя адресата из справочника
func (d *Dispatcher) resolve(ctx context.Context, recipient domain.Recipient) (string, string, error) {
	switch recipient.Kind {
	case domain.RecipientClient:
		client, err := d.clients.GetByDNI(ctx, recipient.Key)
		if err != nil {
			return "", "", fmt.Errorf("resolve client %s: %w", recipient.Key, err)
		}
		return client.Email, client.FullName(), nil
	case domain.RecipientCompany:
		company, err := d.companies.GetByCIF(ctx, recipient.Key)
		if err != nil {
			return "", "", fmt.Errorf("resolve company %s: %w", recipient.Key, err)
		}
		name := company.ContactName
		if name == "" {
			name = company.Name
		}
		return company.Email, name, nil
	default:
		return "", "", fmt.Errorf("unknown recipient kind %q", recipient.Kind)
	}
}

func newNotification(recipient domain.Recipient, message string, notificationType domain.NotificationType) (*domain.Notification, error) {
	key := strings.TrimSpace(recipient.Key)
	if key == "" {
		return nil, fmt.Errorf("%w: empty recipient", ErrInvalidNotification)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidNotification)
	}
	if utf8.RuneCountInString(message) > domain.MaxNotificationLength {
		return nil, fmt.Errorf("%w: message longer than %d characters", ErrInvalidNotification, domain.MaxNotificationLength)
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidNotification, notificationType)
	}

	n := &domain.Notification{
		Message: message,
		Type:    notificationType,
	}

	switch recipient.Kind {
	case domain.RecipientClient:
		n.ClientDNI = &key
	case domain.RecipientCompany:
		n.CompanyCIF = &key
	default:
		return nil, fmt.Errorf("%w: unknown recipient kind %q", ErrInvalidNotification, recipient.Kind)
	}

	return n, nil
}

func (d *Dispatcher) recordNotification(t domain.NotificationType) {
	if d.metrics != nil {
		d.metrics.RecordNotification(string(t))
	}
}

func (d *Dispatcher) recordDelivery(result string) {
	if d.metrics != nil {
		d.metrics.RecordEmailDelivery(result)
	}
}
