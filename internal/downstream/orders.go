package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/httpclient"
)

// OrdersClient talks to the Orders service.
type OrdersClient struct {
	http    *httpclient.Client
	baseURL string
}

// ConvertCart converts the caller's cart into one or more orders, keyed by a
// freshly minted conversion id used as Orders' revert idempotency key.
func (c *OrdersClient) ConvertCart(ctx context.Context, headers map[string]string, cart dto.ConvertCart, conversionID string) ([]dto.Order, error) {
	body := struct {
		dto.ConvertCart
		ConversionID string `json:"conversion_id"`
	}{cart, conversionID}

	var out []dto.Order
	err := c.http.Do(ctx, "orders", http.MethodPost, join(c.baseURL, "/orders/create_from_cart"), headers, body, &out)
	return out, err
}

// RevertConvertCart compensates ConvertCart.
func (c *OrdersClient) RevertConvertCart(ctx context.Context, headers map[string]string, conversionID string) error {
	body := struct {
		ConversionID string `json:"conversion_id"`
	}{conversionID}
	return c.http.Do(ctx, "orders", http.MethodPost, join(c.baseURL, "/orders/create_from_cart/revert"), headers, body, nil)
}

// GetByID fetches an order by numeric id.
func (c *OrdersClient) GetByID(ctx context.Context, headers map[string]string, orderID uint) (dto.Order, error) {
	var out dto.Order
	err := c.http.Do(ctx, "orders", http.MethodGet, join(c.baseURL, "/orders/by-id/"+uintToString(orderID)), headers, nil, &out)
	return out, err
}

// UpdateStatus sets an order's state, optionally with a tracking id / comment.
func (c *OrdersClient) UpdateStatus(ctx context.Context, headers map[string]string, orderID uint, payload dto.UpdateStatePayload) error {
	return c.http.Do(ctx, "orders", http.MethodPut, join(c.baseURL, "/orders/by-id/"+uintToString(orderID)+"/status"), headers, payload, nil)
}

// GetBySlug fetches an order by its public slug.
func (c *OrdersClient) GetBySlug(ctx context.Context, headers map[string]string, slug string) (dto.Order, error) {
	var out dto.Order
	err := c.http.Do(ctx, "orders", http.MethodGet, join(c.baseURL, "/orders/by-slug/"+slug), headers, nil, &out)
	return out, err
}

// SetState sets an order's state by slug, on behalf of the caller issuing headers.
func (c *OrdersClient) SetState(ctx context.Context, headers map[string]string, slug string, payload dto.UpdateStatePayload) (dto.Order, error) {
	var out dto.Order
	err := c.http.Do(ctx, "orders", http.MethodPut, join(c.baseURL, "/orders/by-slug/"+slug+"/status"), headers, payload, &out)
	return out, err
}
