package sagas

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
)

func TestCreateStore_HappyPath(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"stores": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/stores" {
				jsonHandler(http.StatusOK, dto.Store{ID: 30, UserID: 9})(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	})

	req := dto.NewStore{UserID: 9, Name: "Лавка", Slug: "lavka"}
	store, err := CreateStore(context.Background(), env.deps, headers.Inbound{}, req)
	require.NoError(t, err)
	assert.Equal(t, uint(30), store.ID)

	calls := env.recorder.snapshot()
	assert.Contains(t, calls, "POST /stores")
	assert.Contains(t, calls, "POST /warehouses/roles/by_user_id/9")
	assert.Contains(t, calls, "POST /billing/roles")
	assert.Contains(t, calls, "POST /delivery/roles")
	assert.Contains(t, calls, "POST /billing/merchants/store")
}

func TestCreateStore_DeliveryRoleFails_RollsBackInReverseOrder(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"stores": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/stores" {
				jsonHandler(http.StatusOK, dto.Store{ID: 31, UserID: 10})(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
		"delivery": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/delivery/roles" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	})

	req := dto.NewStore{UserID: 10, Name: "Лавка", Slug: "lavka-2"}
	_, err := CreateStore(context.Background(), env.deps, headers.Inbound{}, req)
	require.Error(t, err)

	calls := env.recorder.snapshot()
	require.Contains(t, calls, "POST /stores")
	require.Contains(t, calls, "POST /warehouses/roles/by_user_id/10")
	require.Contains(t, calls, "POST /billing/roles")
	require.Contains(t, calls, "POST /delivery/roles")

	// Warehouse role has no registered compensation: it completed but is left
	// alone. Delivery role's own Start (logged before its failing call) is
	// compensated too, ahead of billing role and the store itself, in exact
	// reverse order.
	assertSubsequenceInOrder(t, calls, []string{
		"DELETE /delivery/roles/by-id/",
		"DELETE /billing/roles/by-id/",
		"DELETE /stores/by_user_id/10",
	})
	for _, c := range calls {
		assert.NotEqual(t, "DELETE /warehouses/roles/by_user_id/10", c, "no compensation registered for the warehouse-role step")
		assert.NotContains(t, c, "DELETE /billing/merchants/store/")
	}
}
