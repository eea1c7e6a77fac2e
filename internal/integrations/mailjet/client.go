package mailjet

import (
	"context"
	"fmt"
	"strings"

	mj "github.com/mailjet/mailjet-apiv3-go"
)

// sendFunc вызов Send API v3.1
type sendFunc func(data *mj.MessagesV31) (*mj.ResultsV31, error)

// Client отправляет письма через Mailjet
type Client struct {
	send     sendFunc
	from     string
	fromName string
	log      Logger
}

// NewClient создает новый экземпляр клиента Mailjet
func NewClient(cfg Config, log Logger) *Client {
	api := mj.NewMailjetClient(cfg.APIKeyPublic, cfg.APIKeyPrivate)

	return &Client{
		send: func(data *mj.MessagesV31) (*mj.ResultsV31, error) {
			return api.SendMailV31(data)
		},
		from:     cfg.From,
		fromName: cfg.FromName,
		log:      log,
	}
}

// Send отправляет текстовое письмо одному получателю
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrInvalidRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
	}

	messages := mj.MessagesV31{
		Info: []mj.InfoMessagesV31{
			{
				From: &mj.RecipientV31{
					Email: c.from,
					Name:  c.fromName,
				},
				To: &mj.RecipientsV31{
					mj.RecipientV31{Email: to},
				},
				Subject:  subject,
				TextPart: body,
			},
		},
	}

	res, err := c.send(&messages)
	if err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
	}

	if res == nil || len(res.ResultsV31) == 0 {
		return fmt.Errorf("%w: to=%s: empty response", ErrRejected, to)
	}
	if status := res.ResultsV31[0].Status; status != statusSuccess {
		return fmt.Errorf("%w: to=%s: status=%s", ErrRejected, to, status)
	}

	c.log.Info("Email sent via Mailjet to=%s subject=%q", to, subject)
	return nil
}
