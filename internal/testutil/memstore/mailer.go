package memstore

import (
	"context"
	"sync"
)

// Email отправленное письмо
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer фейк почтового шлюза: запоминает письма, может падать по запросу
type Mailer struct {
	mu   sync.Mutex
	sent []Email

	// Err если задано, Send возвращает эту ошибку (письмо считается попыткой)
	Err      error
	attempts int
}

// NewMailer создает почтовый шлюз в памяти
func NewMailer() *Mailer {
	return &Mailer{}
}

func (m *Mailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, Email{To: to, Subject: subject, Body: body})
	return nil
}

// Sent успешно отправленные письма
func (m *Mailer) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// Attempts количество вызовов Send
func (m *Mailer) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// SetErr меняет ошибку отправки
func (m *Mailer) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
