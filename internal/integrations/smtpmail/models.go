package smtpmail

// Config параметры SMTP сервера
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // адрес отправителя
	FromName string
}
