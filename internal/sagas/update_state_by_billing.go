package sagas

import (
	"context"
	"strconv"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
	"github.com/director74/saga-coordinator/internal/logging"
)

// UpdateStateByBilling applies a batch of order state transitions coming from
// Billing. It carries no operation log and never rolls back: every update is
// independently idempotent. The first order whose fetch or status update fails
// ends the call with that error; later orders in the batch are not processed
// and updates already applied stay in place.
func UpdateStateByBilling(ctx context.Context, deps *Dependencies, in headers.Inbound, batch dto.BillingOrdersVec) error {
	var updated []dto.Order

	for _, update := range batch.Orders {
		if update.Status == dto.OrderStateAmountExpired || update.Status == dto.OrderStateTransactionPending {
			continue
		}

		order, err := deps.Clients.Orders.GetByID(ctx, in.ForCustomer(strconv.FormatUint(uint64(update.CustomerID), 10)), update.OrderID)
		if err != nil {
			return apperrors.Classify(err, nil)
		}

		if order.State == update.Status {
			continue
		}

		if err := deps.Clients.Orders.UpdateStatus(ctx, in.ForSuperAdmin(), update.OrderID, dto.UpdateStatePayload{State: update.Status}); err != nil {
			return apperrors.Classify(err, nil)
		}

		order.State = update.Status
		updated = append(updated, order)
		if update.Status == dto.OrderStatePaid {
			decrementWarehouseStock(ctx, deps, in, order)
		}
	}

	deps.Notify.SendForOrders(ctx, in, updated)
	return nil
}

// decrementWarehouseStock decrements stock by one unit per matching warehouse
// row on a transition to Paid. Failures are logged and swallowed; this does not
// fail the billing update.
func decrementWarehouseStock(ctx context.Context, deps *Dependencies, in headers.Inbound, order dto.Order) {
	stocks, err := deps.Clients.Warehouses.GetByProduct(ctx, in.ForSuperAdmin(), order.ProductID)
	if err != nil {
		logging.Warn().Err(err).Uint("product_id", order.ProductID).Msg("не удалось получить остатки склада")
		return
	}

	for _, stock := range stocks {
		if stock.Quantity == 0 {
			continue
		}
		if err := deps.Clients.Warehouses.UpdateProductQuantity(ctx, in.ForSuperAdmin(), stock.WarehouseID, stock.ProductID, stock.Quantity-1); err != nil {
			logging.Warn().Err(err).Uint("warehouse_id", stock.WarehouseID).Msg("не удалось уменьшить остаток склада")
		}
	}
}
