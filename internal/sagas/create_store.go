package sagas

import (
	"context"

	"github.com/google/uuid"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
	"github.com/director74/saga-coordinator/internal/metrics"
	"github.com/director74/saga-coordinator/internal/oplog"
)

const sagaCreateStore = "create_store"

// storeValidationFields are the fields selectively relayed out of a 400
// validation payload for CreateStore.
var storeValidationFields = []string{
	"name", "short_description", "long_description", "slug", "phone", "email", "default_language",
}

// CreateStore runs: create store -> assign warehouse role -> assign billing role
// -> assign delivery role -> create billing merchant for the store.
func CreateStore(ctx context.Context, deps *Dependencies, in headers.Inbound, req dto.NewStore) (dto.Store, error) {
	log := oplog.New()

	store, err := runCreateStore(ctx, deps, in, log, req)
	if err != nil {
		metrics.SagaRuns.WithLabelValues(sagaCreateStore, "rolled_back").Inc()
		Rollback(ctx, sagaCreateStore, log, createStoreCompensations(deps, in))
		return dto.Store{}, apperrors.Classify(err, storeValidationFields)
	}

	metrics.SagaRuns.WithLabelValues(sagaCreateStore, "success").Inc()
	return store, nil
}

func runCreateStore(ctx context.Context, deps *Dependencies, in headers.Inbound, log *oplog.Log, req dto.NewStore) (dto.Store, error) {
	store, err := runStep(log, sagaCreateStore, "create_store", StoreCreationStart, StoreCreationComplete, uintToString(req.UserID), func() (dto.Store, error) {
		return deps.Clients.Stores.CreateStore(ctx, in.ForStores(), req)
	})
	if err != nil {
		return dto.Store{}, err
	}

	userIDStr := uintToString(req.UserID)

	if err := runStepVoid(log, sagaCreateStore, "warehouse_role", WarehouseRoleSetStart, WarehouseRoleSetComplete, userIDStr, func() error {
		return deps.Clients.Warehouses.SetRoleByUserID(ctx, in.ForSuperAdmin(), req.UserID, store.ID)
	}); err != nil {
		return dto.Store{}, err
	}

	billingRoleID := uuid.NewString()
	if err := runStepVoid(log, sagaCreateStore, "billing_role", BillingRoleSetStart, BillingRoleSetComplete, billingRoleID, func() error {
		return deps.Clients.Billing.SetRole(ctx, in.ForSuperAdmin(), billingRoleID, req.UserID, "store")
	}); err != nil {
		return dto.Store{}, err
	}

	deliveryRoleID := uuid.NewString()
	if err := runStepVoid(log, sagaCreateStore, "delivery_role", DeliveryRoleSetStart, DeliveryRoleSetComplete, deliveryRoleID, func() error {
		return deps.Clients.Delivery.SetRole(ctx, in.ForSuperAdmin(), deliveryRoleID, req.UserID, "store")
	}); err != nil {
		return dto.Store{}, err
	}

	if err := runStepVoid(log, sagaCreateStore, "billing_create_merchant", BillingCreateMerchantStart, BillingCreateMerchantComplete, uintToString(store.ID), func() error {
		return deps.Clients.Billing.CreateMerchantStore(ctx, in.ForSuperAdmin(), store.ID)
	}); err != nil {
		return dto.Store{}, err
	}

	return store, nil
}

func createStoreCompensations(deps *Dependencies, in headers.Inbound) Registry {
	return Registry{
		BillingCreateMerchantStart: func(ctx context.Context, id string) error {
			return deps.Clients.Billing.DeleteMerchantStore(ctx, in.ForSuperAdmin(), parseUint(id))
		},
		DeliveryRoleSetStart: func(ctx context.Context, id string) error {
			return deps.Clients.Delivery.DeleteRoleByID(ctx, in.ForSuperAdmin(), id)
		},
		BillingRoleSetStart: func(ctx context.Context, id string) error {
			return deps.Clients.Billing.DeleteRoleByID(ctx, in.ForSuperAdmin(), id)
		},
		StoreCreationStart: func(ctx context.Context, id string) error {
			h := in.ForSuperAdmin()
			h[headers.Currency] = "STQ"
			return deps.Clients.Stores.DeleteByUserID(ctx, h, parseUint(id))
		},
	}
}
