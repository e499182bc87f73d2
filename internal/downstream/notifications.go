package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/httpclient"
)

// NotificationsClient talks to the Notifications service.
type NotificationsClient struct {
	http    *httpclient.Client
	baseURL string
}

// Email is a single outbound email request.
type Email struct {
	Template string                 `json:"template"`
	To       string                 `json:"to"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// SendEmail posts a rendered email to Notifications.
func (c *NotificationsClient) SendEmail(ctx context.Context, headers map[string]string, email Email) error {
	return c.http.Do(ctx, "notifications", http.MethodPost, join(c.baseURL, "/notifications/email"), headers, email, nil)
}
