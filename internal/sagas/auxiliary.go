package sagas

import (
	"context"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
)

// RequestPasswordReset mints a reset token via Users and emails it through
// Notifications. Stateless, no operation log: a failed send leaves the user
// able to retry, nothing to compensate.
func RequestPasswordReset(ctx context.Context, deps *Dependencies, in headers.Inbound, req dto.ResetRequest) error {
	token, err := deps.Clients.Users.CreatePasswordResetToken(ctx, in.ForUser(), req.Email)
	if err != nil {
		return apperrors.Classify(err, nil)
	}

	deps.Notify.SendPasswordResetEmail(ctx, in, req.Email, token)
	return nil
}

// ApplyPasswordReset applies a previously minted password reset token.
func ApplyPasswordReset(ctx context.Context, deps *Dependencies, in headers.Inbound, req dto.PasswordResetApply) error {
	if err := deps.Clients.Users.ApplyPasswordReset(ctx, in.ForUser(), req.Token, req.NewPassword); err != nil {
		return apperrors.Classify(err, []string{"password"})
	}
	return nil
}

// RequestEmailVerify mints a verification token and emails it to the caller.
func RequestEmailVerify(ctx context.Context, deps *Dependencies, in headers.Inbound, userID uint, email string) error {
	token, err := deps.Clients.Users.CreateEmailVerifyToken(ctx, in.ForUser(), userID)
	if err != nil {
		return apperrors.Classify(err, nil)
	}

	deps.Notify.SendVerifyEmail(ctx, in, dto.User{ID: userID, Email: email}, token)
	return nil
}

// ApplyEmailVerify applies a previously minted email verification token.
func ApplyEmailVerify(ctx context.Context, deps *Dependencies, in headers.Inbound, req dto.EmailVerifyApply) error {
	if err := deps.Clients.Users.ApplyEmailVerify(ctx, in.ForUser(), req.Token); err != nil {
		return apperrors.Classify(err, nil)
	}
	return nil
}
