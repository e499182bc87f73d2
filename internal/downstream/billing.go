package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/httpclient"
)

// BillingClient talks to the Billing service, grounded on webapi.BillingClient.
type BillingClient struct {
	http    *httpclient.Client
	baseURL string
}

// SetRole grants a billing role to a user, keyed by a freshly minted role id.
func (c *BillingClient) SetRole(ctx context.Context, headers map[string]string, roleID string, userID uint, name string) error {
	body := struct {
		RoleID string `json:"role_id"`
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
	}{roleID, userID, name}
	return c.http.Do(ctx, "billing", http.MethodPost, join(c.baseURL, "/billing/roles"), headers, body, nil)
}

// DeleteRoleByID compensates SetRole.
func (c *BillingClient) DeleteRoleByID(ctx context.Context, headers map[string]string, roleID string) error {
	return c.http.Do(ctx, "billing", http.MethodDelete, join(c.baseURL, "/billing/roles/by-id/"+roleID), headers, nil, nil)
}

// CreateMerchantUser registers a user-owned merchant account.
func (c *BillingClient) CreateMerchantUser(ctx context.Context, headers map[string]string, userID uint) error {
	body := struct {
		UserID uint `json:"user_id"`
	}{userID}
	return c.http.Do(ctx, "billing", http.MethodPost, join(c.baseURL, "/billing/merchants/user"), headers, body, nil)
}

// DeleteMerchantUser compensates CreateMerchantUser.
func (c *BillingClient) DeleteMerchantUser(ctx context.Context, headers map[string]string, userID uint) error {
	return c.http.Do(ctx, "billing", http.MethodDelete, join(c.baseURL, "/billing/merchants/user/"+uintToString(userID)), headers, nil, nil)
}

// CreateMerchantStore registers a store-owned merchant account.
func (c *BillingClient) CreateMerchantStore(ctx context.Context, headers map[string]string, storeID uint) error {
	body := struct {
		StoreID uint `json:"store_id"`
	}{storeID}
	return c.http.Do(ctx, "billing", http.MethodPost, join(c.baseURL, "/billing/merchants/store"), headers, body, nil)
}

// DeleteMerchantStore compensates CreateMerchantStore.
func (c *BillingClient) DeleteMerchantStore(ctx context.Context, headers map[string]string, storeID uint) error {
	return c.http.Do(ctx, "billing", http.MethodDelete, join(c.baseURL, "/billing/merchants/store/"+uintToString(storeID)), headers, nil, nil)
}

// CreateInvoice creates an invoice for a set of converted orders, keyed by the
// CreateOrder saga id (used as an idempotency key at Billing).
func (c *BillingClient) CreateInvoice(ctx context.Context, headers map[string]string, customerID uint, orders []dto.Order, currency, sagaID string) (dto.Invoice, error) {
	body := struct {
		CustomerID uint        `json:"customer_id"`
		Orders     []dto.Order `json:"orders"`
		Currency   string      `json:"currency"`
		SagaID     string      `json:"saga_id"`
	}{customerID, orders, currency, sagaID}

	var out dto.Invoice
	err := c.http.Do(ctx, "billing", http.MethodPost, join(c.baseURL, "/invoices"), headers, body, &out)
	return out, err
}

// DeleteInvoiceBySagaID compensates CreateInvoice.
func (c *BillingClient) DeleteInvoiceBySagaID(ctx context.Context, headers map[string]string, sagaID string) error {
	return c.http.Do(ctx, "billing", http.MethodDelete, join(c.baseURL, "/invoices/by-saga-id/"+sagaID), headers, nil, nil)
}
