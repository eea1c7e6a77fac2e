package mailjet

// Config ключи Send API v3.1 и отправитель
type Config struct {
	APIKeyPublic  string
	APIKeyPrivate string
	From          string
	FromName      string
}

// statusSuccess статус письма в ответе Send API v3.1
const statusSuccess = "success"
