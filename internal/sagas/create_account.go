package sagas

import (
	"context"

	"github.com/google/uuid"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
	"github.com/director74/saga-coordinator/internal/logging"
	"github.com/director74/saga-coordinator/internal/metrics"
	"github.com/director74/saga-coordinator/internal/oplog"
)

const sagaCreateAccount = "create_account"

// accountValidationFields are the fields selectively relayed out of a 400
// validation payload for CreateAccount and BuyNow/CreateOrder.
var accountValidationFields = []string{"email", "password", "phone"}

// CreateAccount runs: create user -> assign users role -> assign stores role ->
// assign billing role -> assign delivery role -> create billing merchant.
// On any failure it rolls back every step started so far, including the one
// that failed, in reverse order.
func CreateAccount(ctx context.Context, deps *Dependencies, in headers.Inbound, profile dto.SagaCreateProfile) (dto.User, error) {
	log := oplog.New()
	sagaID := uuid.NewString()

	user, err := runCreateAccount(ctx, deps, in, log, profile, sagaID)
	if err != nil {
		metrics.SagaRuns.WithLabelValues(sagaCreateAccount, "rolled_back").Inc()
		Rollback(ctx, sagaCreateAccount, log, createAccountCompensations(deps, in))
		return dto.User{}, apperrors.Classify(err, accountValidationFields)
	}

	metrics.SagaRuns.WithLabelValues(sagaCreateAccount, "success").Inc()
	notifyVerifyEmail(ctx, deps, in, user)
	return user, nil
}

func runCreateAccount(ctx context.Context, deps *Dependencies, in headers.Inbound, log *oplog.Log, profile dto.SagaCreateProfile, sagaID string) (dto.User, error) {
	user, err := runStep(log, sagaCreateAccount, "create_user", AccountCreationStart, AccountCreationComplete, sagaID, func() (dto.User, error) {
		return deps.Clients.Users.CreateUser(ctx, in.ForUser(), profile, sagaID)
	})
	if err != nil {
		return dto.User{}, err
	}

	userIDStr := uintToString(user.ID)

	if err := runStepVoid(log, sagaCreateAccount, "users_role", UsersRoleSetStart, UsersRoleSetComplete, userIDStr, func() error {
		return deps.Clients.Users.SetDefaultRole(ctx, in.ForUser(), user.ID)
	}); err != nil {
		return dto.User{}, err
	}

	if err := runStepVoid(log, sagaCreateAccount, "store_role", StoreRoleSetStart, StoreRoleSetComplete, userIDStr, func() error {
		return deps.Clients.Stores.SetDefaultRole(ctx, in.ForStores(), user.ID)
	}); err != nil {
		return dto.User{}, err
	}

	billingRoleID := uuid.NewString()
	if err := runStepVoid(log, sagaCreateAccount, "billing_role", BillingRoleSetStart, BillingRoleSetComplete, billingRoleID, func() error {
		return deps.Clients.Billing.SetRole(ctx, in.ForSuperAdmin(), billingRoleID, user.ID, "user")
	}); err != nil {
		return dto.User{}, err
	}

	deliveryRoleID := uuid.NewString()
	if err := runStepVoid(log, sagaCreateAccount, "delivery_role", DeliveryRoleSetStart, DeliveryRoleSetComplete, deliveryRoleID, func() error {
		return deps.Clients.Delivery.SetRole(ctx, in.ForSuperAdmin(), deliveryRoleID, user.ID, "user")
	}); err != nil {
		return dto.User{}, err
	}

	if err := runStepVoid(log, sagaCreateAccount, "billing_create_merchant", BillingCreateMerchantStart, BillingCreateMerchantComplete, userIDStr, func() error {
		return deps.Clients.Billing.CreateMerchantUser(ctx, in.ForSuperAdmin(), user.ID)
	}); err != nil {
		return dto.User{}, err
	}

	return user, nil
}

// createAccountCompensations maps each Start marker this saga can emit to its
// compensation. The users-role compensation is an explicit addition over the
// source's asymmetric step list — see DESIGN.md Open Question 1.
func createAccountCompensations(deps *Dependencies, in headers.Inbound) Registry {
	return Registry{
		BillingCreateMerchantStart: func(ctx context.Context, id string) error {
			return deps.Clients.Billing.DeleteMerchantUser(ctx, in.ForSuperAdmin(), parseUint(id))
		},
		DeliveryRoleSetStart: func(ctx context.Context, id string) error {
			return deps.Clients.Delivery.DeleteRoleByID(ctx, in.ForSuperAdmin(), id)
		},
		BillingRoleSetStart: func(ctx context.Context, id string) error {
			return deps.Clients.Billing.DeleteRoleByID(ctx, in.ForSuperAdmin(), id)
		},
		StoreRoleSetStart: func(ctx context.Context, id string) error {
			h := in.ForSuperAdmin()
			h[headers.Currency] = "STQ"
			return deps.Clients.Stores.DeleteDefaultRole(ctx, h, parseUint(id))
		},
		UsersRoleSetStart: func(ctx context.Context, id string) error {
			return deps.Clients.Users.DeleteDefaultRole(ctx, in.ForSuperAdmin(), parseUint(id))
		},
		AccountCreationStart: func(ctx context.Context, id string) error {
			return deps.Clients.Users.DeleteBySagaID(ctx, in.ForSuperAdmin(), id)
		},
	}
}

// notifyVerifyEmail is best-effort: its failure never fails CreateAccount.
func notifyVerifyEmail(ctx context.Context, deps *Dependencies, in headers.Inbound, user dto.User) {
	token, err := deps.Clients.Users.CreateEmailVerifyToken(ctx, in.ForUser(), user.ID)
	if err != nil {
		logging.Warn().Err(err).Uint("user_id", user.ID).Msg("не удалось выпустить токен подтверждения почты")
		return
	}

	deps.Notify.SendVerifyEmail(ctx, in, user, token)
}
