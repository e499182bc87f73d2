package sagas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/saga-coordinator/internal/config"
	"github.com/director74/saga-coordinator/internal/downstream"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/headers"
	"github.com/director74/saga-coordinator/internal/httpclient"
	"github.com/director74/saga-coordinator/internal/notify"
)

// callRecorder tracks the method+path of every request received by a fake
// downstream server, in arrival order, safe for concurrent use.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, req.Method+" "+req.URL.Path)
}

func (r *callRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// testEnv wires a Dependencies bundle backed by one httptest server per
// downstream service, each served by a caller-supplied mux.
type testEnv struct {
	recorder         *callRecorder
	users, stores    *httptest.Server
	billing, deliver *httptest.Server
	warehouses       *httptest.Server
	orders, notify   *httptest.Server
	deps             *Dependencies
}

func newTestEnv(t *testing.T, handlers map[string]http.HandlerFunc) *testEnv {
	t.Helper()
	rec := &callRecorder{}

	mux := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			if h != nil {
				h(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}

	env := &testEnv{recorder: rec}
	env.users = httptest.NewServer(mux(handlers["users"]))
	env.stores = httptest.NewServer(mux(handlers["stores"]))
	env.billing = httptest.NewServer(mux(handlers["billing"]))
	env.deliver = httptest.NewServer(mux(handlers["delivery"]))
	env.warehouses = httptest.NewServer(mux(handlers["warehouses"]))
	env.orders = httptest.NewServer(mux(handlers["orders"]))
	env.notify = httptest.NewServer(mux(handlers["notifications"]))

	client := httpclient.New(10, 10, 0, 0)
	clients := downstream.New(client, downstream.Config{
		UsersURL:         env.users.URL,
		StoresURL:        env.stores.URL,
		BillingURL:       env.billing.URL,
		DeliveryURL:      env.deliver.URL,
		WarehousesURL:    env.warehouses.URL,
		OrdersURL:        env.orders.URL,
		NotificationsURL: env.notify.URL,
	})

	env.deps = &Dependencies{
		Clients: clients,
		Notify: notify.New(clients, config.NotificationConfig{
			ClusterURL:            "https://shop.test",
			EmailVerifyTemplate:   "email_verify",
			PasswordResetTemplate: "password_reset",
			OrderCreateTemplate:   "order_create",
			OrderUpdateTemplate:   "order_update",
			NotifyWorkerPoolSize:  4,
		}),
	}

	t.Cleanup(func() {
		env.users.Close()
		env.stores.Close()
		env.billing.Close()
		env.deliver.Close()
		env.warehouses.Close()
		env.orders.Close()
		env.notify.Close()
	})

	return env
}

func jsonHandler(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func errorEnvelope(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	env := struct {
		Payload     interface{} `json:"payload,omitempty"`
		Description string      `json:"description,omitempty"`
	}{Payload: payload, Description: "ошибка нижестоящего сервиса"}
	_ = json.NewEncoder(w).Encode(env)
}

func TestCreateAccount_HappyPath(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"users": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/users" {
				jsonHandler(http.StatusOK, dto.User{ID: 7, Email: "a@x.io"})(w, r)
				return
			}
			if r.Method == http.MethodPost && r.URL.Path == "/users/email_verify_token" {
				jsonHandler(http.StatusOK, map[string]string{"token": "verify-tok"})(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	})

	in := headers.Inbound{Authorization: "Bearer user-token"}
	profile := dto.SagaCreateProfile{Identity: dto.Identity{Email: "a@x.io", Password: "P@ss1", Provider: "Email"}}

	user, err := CreateAccount(context.Background(), env.deps, in, profile)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)

	calls := env.recorder.snapshot()
	assert.Len(t, calls, 8, "6 saga calls + email-verify-token mint + verify email send: %v", calls)
}

func TestCreateAccount_BillingRoleFails_RollsBackInReverseOrder(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"users": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/users" {
				jsonHandler(http.StatusOK, dto.User{ID: 9, Email: "b@x.io"})(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
		"billing": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/billing/roles" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	})

	in := headers.Inbound{Authorization: "Bearer user-token"}
	profile := dto.SagaCreateProfile{Identity: dto.Identity{Email: "b@x.io", Password: "P@ss1", Provider: "Email"}}

	_, err := CreateAccount(context.Background(), env.deps, in, profile)
	require.Error(t, err)

	calls := env.recorder.snapshot()
	require.Contains(t, calls, "POST /users")
	require.Contains(t, calls, "POST /billing/roles")

	// Start is logged before the call is issued, so even the failing
	// billing-role step's own Start marker gets compensated — it may have
	// committed downstream despite the 500. Every step, in exact reverse
	// order: billing-role, stores-role, users-role, the account itself.
	assertSubsequenceInOrder(t, calls, []string{
		"DELETE /billing/roles/by-id/",
		"DELETE /stores/roles/default/9",
		"DELETE /users/roles/default/9",
		"DELETE /users/user_by_saga_id/",
	})
}

func TestCreateAccount_ValidationFailureStillCompensatesItsOwnStart(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"users": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodDelete {
				w.WriteHeader(http.StatusOK)
				return
			}
			errorEnvelope(w, http.StatusBadRequest, map[string][]map[string]string{
				"email": {{"code": "unique", "message": "email уже занят"}},
			})
		},
	})

	in := headers.Inbound{}
	profile := dto.SagaCreateProfile{Identity: dto.Identity{Email: "dup@x.io", Password: "P@ss1", Provider: "Email"}}

	_, err := CreateAccount(context.Background(), env.deps, in, profile)
	require.Error(t, err)

	calls := env.recorder.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "POST /users", calls[0])
	assert.True(t, hasPrefixMatch(calls[1], "DELETE /users/user_by_saga_id/"),
		"Start is logged before the call, so even a definitively-rejected create_user step is compensated: %v", calls)
}

// assertSubsequenceInOrder checks that each of want appears in got, each as
// a prefix match, in the given relative order (not necessarily contiguous).
func assertSubsequenceInOrder(t *testing.T, got []string, want []string) {
	t.Helper()
	idx := 0
	for _, g := range got {
		if idx >= len(want) {
			break
		}
		if hasPrefixMatch(g, want[idx]) {
			idx++
		}
	}
	assert.Equal(t, len(want), idx, "expected subsequence %v in order within %v", want, got)
}

func hasPrefixMatch(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
