// internal/sms/sms.go
package sms

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/konnethq/konnet/internal/config"
)

// Message is one outbound SMS, possibly to several recipients.
type Message struct {
	To   []string
	Body string
}

// Sender delivers an SMS message. The core does not retry on failure.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client talks to the bulk SMS gateway over HTTP.
type Client struct {
	http   *resty.Client
	config *config.Config
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(cfg.SMS.GatewayURL),
		config: cfg,
	}
}

type gatewayRecipient struct {
	MSIDN string `json:"msidn"`
}

type gatewayPayload struct {
	SMS struct {
		Auth struct {
			Username string `json:"username"`
			APIKey   string `json:"apikey"`
		} `json:"auth"`
		Message struct {
			Sender      string `json:"sender"`
			MessageText string `json:"messagetext"`
			Flash       string `json:"flash"`
		} `json:"message"`
		Recipients struct {
			GSM []gatewayRecipient `json:"gsm"`
		} `json:"recipients"`
	} `json:"SMS"`
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	payload := gatewayPayload{}
	payload.SMS.Auth.Username = c.config.SMS.Username
	payload.SMS.Auth.APIKey = c.config.SMS.APIKey
	payload.SMS.Message.Sender = c.config.SMS.Sender
	payload.SMS.Message.MessageText = msg.Body
	payload.SMS.Message.Flash = "0"
	for _, to := range msg.To {
		payload.SMS.Recipients.GSM = append(payload.SMS.Recipients.GSM, gatewayRecipient{MSIDN: to})
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("")
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
