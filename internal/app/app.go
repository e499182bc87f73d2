// Package app wires the coordinator's configuration, downstream clients, and
// HTTP server into a single runnable process.
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/director74/saga-coordinator/internal/apperrors"
	"github.com/director74/saga-coordinator/internal/config"
	"github.com/director74/saga-coordinator/internal/downstream"
	"github.com/director74/saga-coordinator/internal/httpapi"
	"github.com/director74/saga-coordinator/internal/httpclient"
	"github.com/director74/saga-coordinator/internal/logging"
	"github.com/director74/saga-coordinator/internal/notify"
	"github.com/director74/saga-coordinator/internal/sagas"
)

// App holds the coordinator's wired dependencies and HTTP server.
type App struct {
	config     *config.Config
	httpServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logging.Init(logging.Config{Level: cfg.App.LogLevel, Pretty: cfg.App.LogPretty})

	sharedClient := httpclient.New(
		cfg.HTTP.MaxIdleConns,
		cfg.HTTP.MaxIdleConnsPerHost,
		cfg.HTTP.IdleConnTimeout,
		cfg.HTTP.DownstreamTimeout,
	)

	clients := downstream.New(sharedClient, downstream.Config{
		UsersURL:         cfg.Services.UsersURL,
		StoresURL:        cfg.Services.StoresURL,
		BillingURL:       cfg.Services.BillingURL,
		WarehousesURL:    cfg.Services.WarehousesURL,
		DeliveryURL:      cfg.Services.DeliveryURL,
		OrdersURL:        cfg.Services.OrdersURL,
		NotificationsURL: cfg.Services.NotificationsURL,
	})

	deps := &sagas.Dependencies{
		Clients: clients,
		Notify:  notify.New(clients, cfg.Notifications),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(apperrors.RecoveryMiddleware())
	router.Use(apperrors.ErrorMiddleware())
	router.NoRoute(apperrors.NotFoundHandler())
	router.NoMethod(apperrors.MethodNotAllowedHandler())

	httpapi.NewHandler(deps).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{config: cfg, httpServer: httpServer}, nil
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)

	go func() {
		logging.Info().Str("port", a.config.HTTP.Port).Msg("HTTP сервер запущен")
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logging.Info().Msg("получен сигнал завершения, закрываем приложение")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown() error {
	errGroup := apperrors.NewErrorGroup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		errGroup.Add(apperrors.AppendPrefix(err, "ошибка при закрытии HTTP сервера"))
	}

	if errGroup.HasErrors() {
		logging.Error().Err(errGroup).Msg("ошибки при завершении работы")
		return errGroup
	}

	logging.Info().Msg("приложение успешно завершено")
	return nil
}
