package notifications

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// формат даты в текстах для клиента
const messageDateFormat = "02/01/2006"

// BookingCreatedMessage текст уведомления о новой брони
func BookingCreatedMessage(b *domain.Booking, serviceName string) string {
	return fmt.Sprintf(
		"Su reserva #%d para %s el %s a las %s ha sido registrada con estado %s.",
		b.ID, serviceName, b.Date.Format(messageDateFormat), b.Time, b.Status,
	)
}

// BookingUpdatedMessage текст уведомления об изменении брони
func BookingUpdatedMessage(b *domain.Booking, serviceName string) string {
	return fmt.Sprintf(
		"Su reserva #%d ha sido modificada: %s el %s a las %s, estado %s.",
		b.ID, serviceName, b.Date.Format(messageDateFormat), b.Time, b.Status,
	)
}

// BookingCancelledMessage текст уведомления об отмене брони
func BookingCancelledMessage(b *domain.Booking) string {
	return fmt.Sprintf(
		"Su reserva #%d del %s a las %s ha sido cancelada.",
		b.ID, b.Date.Format(messageDateFormat), b.Time,
	)
}

// BookingReminderMessage текст напоминания о предстоящей брони
func BookingReminderMessage(b *domain.Booking) string {
	return fmt.Sprintf(
		"Le recordamos su reserva #%d el %s a las %s.",
		b.ID, b.Date.Format(messageDateFormat), b.Time,
	)
}
