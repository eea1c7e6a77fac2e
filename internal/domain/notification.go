package domain

import "time"

// NotificationType тип уведомления
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFORMACION"
	NotificationWarning NotificationType = "ADVERTENCIA"
	NotificationError   NotificationType = "ERROR"
)

// IsValid returns true for a known notification type
func (t NotificationType) IsValid() bool {
	return t == NotificationInfo || t == NotificationWarning || t == NotificationError
}

// RecipientKind кому адресовано уведомление
type RecipientKind string

const (
	RecipientClient  RecipientKind = "client"
	RecipientCompany RecipientKind = "company"
)

// Recipient адресат уведомления (клиент по DNI или компания по CIF)
type Recipient struct {
	Kind RecipientKind
	Key  string
}

// ClientRecipient адресат-клиент
func ClientRecipient(dni string) Recipient {
	return Recipient{Kind: RecipientClient, Key: dni}
}

// CompanyRecipient адресат-компания
func CompanyRecipient(cif string) Recipient {
	return Recipient{Kind: RecipientCompany, Key: cif}
}

// Notification an internally persisted message, optionally relayed by email.
// Exactly one of ClientDNI / CompanyCIF is set.
type Notification struct {
	ID         int64
	ClientDNI  *string
	CompanyCIF *string
	Message    string
	Type       NotificationType
	EmailSent  bool
	CreatedAt  time.Time
}
