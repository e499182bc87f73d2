package notify

import (
	"context"

	"github.com/director74/saga-coordinator/internal/downstream"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
)

// SendVerifyEmail sends the email-verification link to a newly created user.
// Failure is swallowed — called only from best-effort call sites.
func (f *FanOut) SendVerifyEmail(ctx context.Context, in headers.Inbound, user dto.User, token string) {
	f.sendRaw(ctx, in, "user", f.cfg.EmailVerifyTemplate, "email:"+user.Email, map[string]interface{}{
		"cluster_url": f.cfg.ClusterURL,
		"token":       token,
	})
}

// SendPasswordResetEmail sends a password reset link to the given email.
func (f *FanOut) SendPasswordResetEmail(ctx context.Context, in headers.Inbound, email, token string) {
	f.sendRaw(ctx, in, "user", f.cfg.PasswordResetTemplate, "email:"+email, map[string]interface{}{
		"cluster_url": f.cfg.ClusterURL,
		"token":       token,
	})
}

func (f *FanOut) sendRaw(ctx context.Context, in headers.Inbound, channel, template, to string, data map[string]interface{}) {
	email := downstream.Email{Template: template, To: to, Data: data}
	if err := f.clients.Notifications.SendEmail(ctx, in.ForSuperAdmin(), email); err != nil {
		recordSendFailure(channel, to, err)
	}
}
