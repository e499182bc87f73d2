// Package downstream содержит one typed wrapper per downstream service, each
// built over the shared httpclient.Client and a service base URL. Каждая
// операция принимает заранее собранный набор заголовков (см. internal/headers),
// оставляя выбор роли вызова (пользователь/супер-админ) саге.
package downstream

import (
	"fmt"
	"strconv"

	"github.com/director74/saga-coordinator/internal/httpclient"
)

// Clients bundles one wrapper per downstream service used by the sagas.
type Clients struct {
	Users         *UsersClient
	Stores        *StoresClient
	Billing       *BillingClient
	Warehouses    *WarehousesClient
	Delivery      *DeliveryClient
	Orders        *OrdersClient
	Notifications *NotificationsClient
}

// Config carries the base URLs needed to construct a Clients bundle.
type Config struct {
	UsersURL         string
	StoresURL        string
	BillingURL       string
	WarehousesURL    string
	DeliveryURL      string
	OrdersURL        string
	NotificationsURL string
}

// New builds a Clients bundle sharing a single http transport.
func New(http *httpclient.Client, cfg Config) *Clients {
	return &Clients{
		Users:         &UsersClient{http: http, baseURL: cfg.UsersURL},
		Stores:        &StoresClient{http: http, baseURL: cfg.StoresURL},
		Billing:       &BillingClient{http: http, baseURL: cfg.BillingURL},
		Warehouses:    &WarehousesClient{http: http, baseURL: cfg.WarehousesURL},
		Delivery:      &DeliveryClient{http: http, baseURL: cfg.DeliveryURL},
		Orders:        &OrdersClient{http: http, baseURL: cfg.OrdersURL},
		Notifications: &NotificationsClient{http: http, baseURL: cfg.NotificationsURL},
	}
}

func join(base, path string) string {
	return fmt.Sprintf("%s%s", base, path)
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
