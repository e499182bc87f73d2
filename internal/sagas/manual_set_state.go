package sagas

import (
	"context"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
)

// ManualSetState applies an operator- or user-issued state change to a single
// order identified by its slug. No operation log, no rollback: a single
// idempotent call.
func ManualSetState(ctx context.Context, deps *Dependencies, in headers.Inbound, slug string, payload dto.UpdateStatePayload) (dto.Order, error) {
	current, err := deps.Clients.Orders.GetBySlug(ctx, in.ForUser(), slug)
	if err != nil {
		return dto.Order{}, apperrors.Classify(err, nil)
	}

	if current.State == payload.State {
		return current, nil
	}

	updated, err := deps.Clients.Orders.SetState(ctx, in.ForUser(), slug, payload)
	if err != nil {
		return dto.Order{}, apperrors.Classify(err, nil)
	}

	deps.Notify.SendForOrders(ctx, in, []dto.Order{updated})
	return updated, nil
}
