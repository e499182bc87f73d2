// Command coordinator runs the saga coordinator HTTP service.
package main

import (
	"os"

	"github.com/director74/saga-coordinator/internal/app"
	"github.com/director74/saga-coordinator/internal/config"
	"github.com/director74/saga-coordinator/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("не удалось загрузить конфигурацию")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("не удалось инициализировать приложение")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		logging.Error().Err(err).Msg("приложение завершилось с ошибкой")
		os.Exit(1)
	}
}
