package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/httpclient"
)

// WarehousesClient talks to the Warehouses service.
type WarehousesClient struct {
	http    *httpclient.Client
	baseURL string
}

// Stock is one warehouse's quantity on hand for a product.
type Stock struct {
	WarehouseID uint `json:"warehouse_id"`
	ProductID   uint `json:"product_id"`
	Quantity    uint `json:"quantity"`
}

// SetRoleByUserID grants a warehouse-manager role to a store's owner.
func (c *WarehousesClient) SetRoleByUserID(ctx context.Context, headers map[string]string, userID, storeID uint) error {
	body := struct {
		Name string `json:"name"`
		Data uint   `json:"data"`
	}{"store_manager", storeID}
	return c.http.Do(ctx, "warehouses", http.MethodPost, join(c.baseURL, "/warehouses/roles/by_user_id/"+uintToString(userID)), headers, body, nil)
}

// GetByProduct lists the per-warehouse stock rows for a product.
func (c *WarehousesClient) GetByProduct(ctx context.Context, headers map[string]string, productID uint) ([]Stock, error) {
	var out []Stock
	err := c.http.Do(ctx, "warehouses", http.MethodGet, join(c.baseURL, "/warehouses/by-product/"+uintToString(productID)), headers, nil, &out)
	return out, err
}

// UpdateProductQuantity sets a warehouse's stock for a product to quantity.
func (c *WarehousesClient) UpdateProductQuantity(ctx context.Context, headers map[string]string, warehouseID, productID, quantity uint) error {
	body := struct {
		Quantity uint `json:"quantity"`
	}{quantity}
	path := "/warehouses/" + uintToString(warehouseID) + "/products/" + uintToString(productID)
	return c.http.Do(ctx, "warehouses", http.MethodPut, join(c.baseURL, path), headers, body, nil)
}
