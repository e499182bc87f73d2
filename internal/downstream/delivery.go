package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/httpclient"
)

// DeliveryClient talks to the Delivery service.
type DeliveryClient struct {
	http    *httpclient.Client
	baseURL string
}

// SetRole grants a delivery role to a user, keyed by a freshly minted role id.
func (c *DeliveryClient) SetRole(ctx context.Context, headers map[string]string, roleID string, userID uint, name string) error {
	body := struct {
		RoleID string `json:"role_id"`
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
	}{roleID, userID, name}
	return c.http.Do(ctx, "delivery", http.MethodPost, join(c.baseURL, "/delivery/roles"), headers, body, nil)
}

// DeleteRoleByID compensates SetRole.
func (c *DeliveryClient) DeleteRoleByID(ctx context.Context, headers map[string]string, roleID string) error {
	return c.http.Do(ctx, "delivery", http.MethodDelete, join(c.baseURL, "/delivery/roles/by-id/"+roleID), headers, nil, nil)
}
