package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/httpclient"
)

// UsersClient talks to the Users service.
type UsersClient struct {
	http    *httpclient.Client
	baseURL string
}

// CreateUser creates a user profile, stamped with the saga id that owns the
// CreateAccount run (used as an idempotency key for retries at Users).
func (c *UsersClient) CreateUser(ctx context.Context, headers map[string]string, profile dto.SagaCreateProfile, sagaID string) (dto.User, error) {
	body := struct {
		dto.SagaCreateProfile
		SagaID string `json:"saga_id"`
	}{profile, sagaID}

	var out dto.User
	err := c.http.Do(ctx, "users", http.MethodPost, join(c.baseURL, "/users"), headers, body, &out)
	return out, err
}

// SetDefaultRole grants the default role to a newly created user.
func (c *UsersClient) SetDefaultRole(ctx context.Context, headers map[string]string, userID uint) error {
	return c.http.Do(ctx, "users", http.MethodPost, join(c.baseURL, pathUserRole(userID)), headers, nil, nil)
}

// DeleteDefaultRole compensates SetDefaultRole.
func (c *UsersClient) DeleteDefaultRole(ctx context.Context, headers map[string]string, userID uint) error {
	return c.http.Do(ctx, "users", http.MethodDelete, join(c.baseURL, pathUserRole(userID)), headers, nil, nil)
}

// DeleteBySagaID compensates CreateUser.
func (c *UsersClient) DeleteBySagaID(ctx context.Context, headers map[string]string, sagaID string) error {
	return c.http.Do(ctx, "users", http.MethodDelete, join(c.baseURL, "/users/user_by_saga_id/"+sagaID), headers, nil, nil)
}

// CreatePasswordResetToken mints a password reset token for the given email.
func (c *UsersClient) CreatePasswordResetToken(ctx context.Context, headers map[string]string, email string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := struct {
		Email string `json:"email"`
	}{email}
	err := c.http.Do(ctx, "users", http.MethodPost, join(c.baseURL, "/users/password_reset_token"), headers, body, &out)
	return out.Token, err
}

// ApplyPasswordReset applies a previously minted password reset token.
func (c *UsersClient) ApplyPasswordReset(ctx context.Context, headers map[string]string, token, newPassword string) error {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}{token, newPassword}
	return c.http.Do(ctx, "users", http.MethodPost, join(c.baseURL, "/users/password_reset_apply"), headers, body, nil)
}

// CreateEmailVerifyToken mints an email verification token for the given user.
func (c *UsersClient) CreateEmailVerifyToken(ctx context.Context, headers map[string]string, userID uint) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := struct {
		UserID uint `json:"user_id"`
	}{userID}
	err := c.http.Do(ctx, "users", http.MethodPost, join(c.baseURL, "/users/email_verify_token"), headers, body, &out)
	return out.Token, err
}

// ApplyEmailVerify applies a previously minted email verification token.
func (c *UsersClient) ApplyEmailVerify(ctx context.Context, headers map[string]string, token string) error {
	body := struct {
		Token string `json:"token"`
	}{token}
	return c.http.Do(ctx, "users", http.MethodPost, join(c.baseURL, "/users/email_verify_apply"), headers, body, nil)
}

func pathUserRole(userID uint) string {
	return "/users/roles/default/" + uintToString(userID)
}
