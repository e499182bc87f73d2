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

const sagaCreateOrder = "create_order"

// CreateOrder runs: convert cart into orders -> create a billing invoice for
// the resulting orders, then fans out "order created" notifications.
func CreateOrder(ctx context.Context, deps *Dependencies, in headers.Inbound, cart dto.ConvertCart) (dto.Invoice, error) {
	log := oplog.New()
	sagaID := uuid.NewString()

	invoice, orders, err := runCreateOrder(ctx, deps, in, log, cart, sagaID)
	if err != nil {
		metrics.SagaRuns.WithLabelValues(sagaCreateOrder, "rolled_back").Inc()
		Rollback(ctx, sagaCreateOrder, log, createOrderCompensations(deps, in))
		return dto.Invoice{}, apperrors.Classify(err, accountValidationFields)
	}

	metrics.SagaRuns.WithLabelValues(sagaCreateOrder, "success").Inc()
	deps.Notify.SendForOrders(ctx, in, orders)
	return invoice, nil
}

func runCreateOrder(ctx context.Context, deps *Dependencies, in headers.Inbound, log *oplog.Log, cart dto.ConvertCart, sagaID string) (dto.Invoice, []dto.Order, error) {
	conversionID := uuid.NewString()

	orders, err := runStep(log, sagaCreateOrder, "convert_cart", OrdersConvertCartStart, OrdersConvertCartComplete, conversionID, func() ([]dto.Order, error) {
		return deps.Clients.Orders.ConvertCart(ctx, in.ForUser(), cart, conversionID)
	})
	if err != nil {
		return dto.Invoice{}, nil, err
	}

	invoice, err := runStep(log, sagaCreateOrder, "create_invoice", BillingCreateInvoiceStart, BillingCreateInvoiceComplete, sagaID, func() (dto.Invoice, error) {
		return deps.Clients.Billing.CreateInvoice(ctx, in.ForSuperAdmin(), cart.CustomerID, orders, cart.Currency, sagaID)
	})
	if err != nil {
		return dto.Invoice{}, nil, err
	}

	return invoice, orders, nil
}

func createOrderCompensations(deps *Dependencies, in headers.Inbound) Registry {
	return Registry{
		BillingCreateInvoiceStart: func(ctx context.Context, id string) error {
			return deps.Clients.Billing.DeleteInvoiceBySagaID(ctx, in.ForSuperAdmin(), id)
		},
		OrdersConvertCartStart: func(ctx context.Context, id string) error {
			return deps.Clients.Orders.RevertConvertCart(ctx, in.ForSuperAdmin(), id)
		},
	}
}

// BuyNow normalizes a single-item purchase into a ConvertCart and runs CreateOrder.
func BuyNow(ctx context.Context, deps *Dependencies, in headers.Inbound, req dto.BuyNow) (dto.Invoice, error) {
	return CreateOrder(ctx, deps, in, req.ToConvertCart())
}
