package notifications

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	subjectTemplate = template.Must(template.New("subject").Parse(
		`{{.AppName}} - {{.TypeLabel}}`,
	))

	bodyTemplate = template.Must(template.New("body").Parse(
		`Hola {{.Name}},

{{.Message}}

Este es un mensaje automático de {{.AppName}}. Por favor, no responda a este correo.
`))
)

// emailData данные для шаблонов письма
type emailData struct {
	AppName   string
	Name      string
	Message   string
	TypeLabel string
}

// typeLabels заголовки письма по типу уведомления
var typeLabels = map[domain.NotificationType]string{
	domain.NotificationInfo:    "Información sobre su reserva",
	domain.NotificationWarning: "Aviso sobre su reserva",
	domain.NotificationError:   "Incidencia con su reserva",
}

func render(data emailData) (subject, body string, err error) {
	var buf bytes.Buffer

	if err := subjectTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = buf.String()

	buf.Reset()
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}

	return subject, buf.String(), nil
}
