package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/config"
	"github.com/director74/saga-coordinator/internal/downstream"
	"github.com/director74/saga-coordinator/internal/dto"
	"github.com/director74/saga-coordinator/internal/httpclient"
	"github.com/director74/saga-coordinator/internal/notify"
	"github.com/director74/saga-coordinator/internal/sagas"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, handlers map[string]http.HandlerFunc) *gin.Engine {
	t.Helper()

	mux := func(h http.HandlerFunc) http.HandlerFunc {
		if h != nil {
			return h
		}
		return func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	}

	users := httptest.NewServer(mux(handlers["users"]))
	stores := httptest.NewServer(mux(handlers["stores"]))
	billing := httptest.NewServer(mux(handlers["billing"]))
	delivery := httptest.NewServer(mux(handlers["delivery"]))
	warehouses := httptest.NewServer(mux(handlers["warehouses"]))
	orders := httptest.NewServer(mux(handlers["orders"]))
	notifications := httptest.NewServer(mux(handlers["notifications"]))
	t.Cleanup(func() {
		users.Close()
		stores.Close()
		billing.Close()
		delivery.Close()
		warehouses.Close()
		orders.Close()
		notifications.Close()
	})

	client := httpclient.New(10, 10, 0, 0)
	clients := downstream.New(client, downstream.Config{
		UsersURL:         users.URL,
		StoresURL:        stores.URL,
		BillingURL:       billing.URL,
		DeliveryURL:      delivery.URL,
		WarehousesURL:    warehouses.URL,
		OrdersURL:        orders.URL,
		NotificationsURL: notifications.URL,
	})

	deps := &sagas.Dependencies{
		Clients: clients,
		Notify:  notify.New(clients, config.NotificationConfig{NotifyWorkerPoolSize: 2}),
	}

	router := gin.New()
	router.Use(apperrors.RecoveryMiddleware())
	router.NoRoute(apperrors.NotFoundHandler())
	router.NoMethod(apperrors.MethodNotAllowedHandler())
	NewHandler(deps).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(context.Background()))
	return rec
}

func TestHealthCheck_ReportsOK(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAccount_Route_HappyPath(t *testing.T) {
	router := newTestRouter(t, map[string]http.HandlerFunc{
		"users": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/users" {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(dto.User{ID: 1, Email: "a@x.io"})
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/create_account", dto.SagaCreateProfile{
		Identity: dto.Identity{Email: "a@x.io", Password: "p", Provider: "Email"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(1), got.ID)
}

func TestCreateAccount_Route_DownstreamValidationMapsTo400(t *testing.T) {
	router := newTestRouter(t, map[string]http.HandlerFunc{
		"users": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"description": "ошибка валидации",
				"payload": map[string][]map[string]string{
					"email": {{"code": "unique", "message": "email уже занят"}},
				},
			})
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/create_account", dto.SagaCreateProfile{
		Identity: dto.Identity{Email: "dup@x.io", Password: "p", Provider: "Email"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body apperrors.HTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "email")
}

func TestCreateAccount_Route_MalformedBodyIs400(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/create_account", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute_Returns404(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, http.MethodGet, "/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestManualSetState_Route_UsesSlugFromPath(t *testing.T) {
	router := newTestRouter(t, map[string]http.HandlerFunc{
		"orders": func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/orders/by-slug/order-9":
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(dto.Order{ID: 9, Slug: "order-9", State: dto.OrderStateSent})
			case r.Method == http.MethodPut && r.URL.Path == "/orders/by-slug/order-9/status":
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(dto.Order{ID: 9, Slug: "order-9", State: dto.OrderStateDelivered})
			default:
				w.WriteHeader(http.StatusOK)
			}
		},
	})

	rec := doJSON(t, router, http.MethodPost, "/orders/order-9/set_state", dto.UpdateStatePayload{State: dto.OrderStateDelivered})
	require.Equal(t, http.StatusOK, rec.Code)

	var order dto.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, dto.OrderStateDelivered, order.State)
}
