// Package notify implements the post-saga notification fan-out: per-order,
// per-state emails to the customer and, once paid, the owning store.
// Every send failure is swallowed — notifications never fail a saga.
package notify

import (
	"context"
	"sync"

	"github.com/director74/saga-coordinator/internal/config"
	"github.com/director74/saga-coordinator/internal/downstream"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
	"github.com/director74/saga-coordinator/internal/logging"
	"github.com/director74/saga-coordinator/internal/metrics"
)

// FanOut sends order-state notifications through the Notifications service.
type FanOut struct {
	clients *downstream.Clients
	cfg     config.NotificationConfig
	sem     chan struct{}
}

func New(clients *downstream.Clients, cfg config.NotificationConfig) *FanOut {
	poolSize := cfg.NotifyWorkerPoolSize
	if poolSize <= 0 {
		poolSize = 1
	}
	return &FanOut{clients: clients, cfg: cfg, sem: make(chan struct{}, poolSize)}
}

type policyEntry struct {
	userTemplate  string
	storeTemplate string
}

func (f *FanOut) policy() map[string]policyEntry {
	return map[string]policyEntry{
		dto.OrderStateNew:          {userTemplate: f.cfg.OrderCreateTemplate},
		dto.OrderStatePaid:         {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderCreateTemplate},
		dto.OrderStateInProcessing: {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderUpdateTemplate},
		dto.OrderStateCancelled:    {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderUpdateTemplate},
		dto.OrderStateSent:         {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderUpdateTemplate},
		dto.OrderStateDelivered:    {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderUpdateTemplate},
		dto.OrderStateReceived:     {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderUpdateTemplate},
		dto.OrderStateComplete:     {userTemplate: f.cfg.OrderUpdateTemplate, storeTemplate: f.cfg.OrderUpdateTemplate},
		// PaymentAwaited, TransactionPending, AmountExpired are invoice-only states: no email.
	}
}

// SendForOrders fans out notifications for a batch of orders. Different orders
// are sent concurrently, bounded by the worker pool; within one order the user
// email always precedes the store email.
func (f *FanOut) SendForOrders(ctx context.Context, in headers.Inbound, orders []dto.Order) {
	var wg sync.WaitGroup
	for _, o := range orders {
		order := o
		wg.Add(1)
		f.sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-f.sem }()
			f.sendOne(ctx, in, order)
		}()
	}
	wg.Wait()
}

func (f *FanOut) sendOne(ctx context.Context, in headers.Inbound, order dto.Order) {
	entry, ok := f.policy()[order.State]
	if !ok {
		return
	}

	if entry.userTemplate != "" {
		f.send(ctx, in, "user", entry.userTemplate, "customer:"+uintToString(order.CustomerID), order)
	}
	if entry.storeTemplate != "" {
		f.send(ctx, in, "store", entry.storeTemplate, "store:"+uintToString(order.StoreID), order)
	}
}

func (f *FanOut) send(ctx context.Context, in headers.Inbound, channel, template, to string, order dto.Order) {
	f.sendRaw(ctx, in, channel, template, to, map[string]interface{}{
		"cluster_url": f.cfg.ClusterURL,
		"order_id":    order.ID,
		"order_slug":  order.Slug,
		"state":       order.State,
	})
}

func recordSendFailure(channel, to string, err error) {
	metrics.NotificationSendFailures.WithLabelValues(channel).Inc()
	logging.Warn().Err(err).Str("channel", channel).Str("to", to).Msg("не удалось отправить уведомление, пропускаем")
}
