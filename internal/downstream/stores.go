package downstream

import (
	"context"
	"net/http"

	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/httpclient"
)

// StoresClient talks to the Stores service.
type StoresClient struct {
	http    *httpclient.Client
	baseURL string
}

// SetDefaultRole grants the default store-facing role to a user.
func (c *StoresClient) SetDefaultRole(ctx context.Context, headers map[string]string, userID uint) error {
	return c.http.Do(ctx, "stores", http.MethodPost, join(c.baseURL, pathStoreRole(userID)), headers, nil, nil)
}

// DeleteDefaultRole compensates SetDefaultRole.
func (c *StoresClient) DeleteDefaultRole(ctx context.Context, headers map[string]string, userID uint) error {
	return c.http.Do(ctx, "stores", http.MethodDelete, join(c.baseURL, pathStoreRole(userID)), headers, nil, nil)
}

// CreateStore creates a store owned by the caller.
func (c *StoresClient) CreateStore(ctx context.Context, headers map[string]string, req dto.NewStore) (dto.Store, error) {
	var out dto.Store
	err := c.http.Do(ctx, "stores", http.MethodPost, join(c.baseURL, "/stores"), headers, req, &out)
	return out, err
}

// DeleteByUserID compensates CreateStore.
func (c *StoresClient) DeleteByUserID(ctx context.Context, headers map[string]string, userID uint) error {
	return c.http.Do(ctx, "stores", http.MethodDelete, join(c.baseURL, "/stores/by_user_id/"+uintToString(userID)), headers, nil, nil)
}

func pathStoreRole(userID uint) string {
	return "/stores/roles/default/" + uintToString(userID)
}
