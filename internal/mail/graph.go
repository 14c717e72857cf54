package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// GraphSender sends mail through the Microsoft Graph sendMail endpoint
// using the application's client-credentials grant.
type GraphSender struct {
	sender string
	client *http.Client
}

// NewGraphSender builds a sender from Graph credentials. The returned
// http.Client refreshes the bearer token automatically.
func NewGraphSender(cfg config.MailConfig) *GraphSender {
	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	client := creds.Client(context.Background())
	client.Timeout = 15 * time.Second
	return &GraphSender{sender: cfg.SenderEmail, client: client}
}

type graphMessage struct {
	Subject      string           `json:"subject"`
	Body         graphBody        `json:"body"`
	ToRecipients []graphRecipient `json:"toRecipients"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphRecipient struct {
	EmailAddress graphAddress `json:"emailAddress"`
}

type graphAddress struct {
	Address string `json:"address"`
}

type sendMailRequest struct {
	Message         graphMessage `json:"message"`
	SaveToSentItems string       `json:"saveToSentItems"`
}

// Send posts one HTML message to the configured sender's mailbox.
func (s *GraphSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload := sendMailRequest{
		Message: graphMessage{
			Subject: subject,
			Body:    graphBody{ContentType: "HTML", Content: htmlBody},
			ToRecipients: []graphRecipient{
				{EmailAddress: graphAddress{Address: to}},
			},
		},
		SaveToSentItems: "true",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sendMail payload: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/sendMail", graphBaseURL, s.sender)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graph sendMail status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
