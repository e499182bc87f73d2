// Package config загружает конфигурацию координатора саг из переменных окружения.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config содержит полную конфигурацию приложения.
type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Services      ServicesConfig
	Notifications NotificationConfig
	Metrics       MetricsConfig
}

// AppConfig содержит общие настройки приложения.
type AppConfig struct {
	Name      string `env:"APP_NAME" envDefault:"saga-coordinator"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// HTTPConfig содержит настройки HTTP сервера и исходящего пула соединений.
type HTTPConfig struct {
	Port         string        `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`

	// DownstreamTimeout — таймаут общего клиента для каждого вызова нижестоящего
	// сервиса. Заголовок X-Request-Timeout лишь пересылается дальше и на этот
	// таймаут не влияет.
	DownstreamTimeout   time.Duration `env:"DOWNSTREAM_TIMEOUT" envDefault:"5s"`
	MaxIdleConns        int           `env:"DOWNSTREAM_MAX_IDLE_CONNS" envDefault:"100"`
	MaxIdleConnsPerHost int           `env:"DOWNSTREAM_MAX_IDLE_CONNS_PER_HOST" envDefault:"20"`
	IdleConnTimeout     time.Duration `env:"DOWNSTREAM_IDLE_CONN_TIMEOUT" envDefault:"90s"`
}

// ServicesConfig содержит базовые URL всех нижестоящих сервисов.
type ServicesConfig struct {
	UsersURL         string `env:"USERS_SERVICE_URL" envDefault:"http://localhost:8101"`
	StoresURL        string `env:"STORES_SERVICE_URL" envDefault:"http://localhost:8102"`
	BillingURL       string `env:"BILLING_SERVICE_URL" envDefault:"http://localhost:8103"`
	WarehousesURL    string `env:"WAREHOUSES_SERVICE_URL" envDefault:"http://localhost:8104"`
	DeliveryURL      string `env:"DELIVERY_SERVICE_URL" envDefault:"http://localhost:8105"`
	OrdersURL        string `env:"ORDERS_SERVICE_URL" envDefault:"http://localhost:8106"`
	NotificationsURL string `env:"NOTIFICATIONS_SERVICE_URL" envDefault:"http://localhost:8107"`
}

// NotificationConfig содержит шаблоны писем и базовый URL кластера, вставляемый в них.
type NotificationConfig struct {
	ClusterURL             string `env:"CLUSTER_URL" envDefault:"https://shop.example.com"`
	EmailVerifyTemplate    string `env:"NOTIFY_TEMPLATE_EMAIL_VERIFY" envDefault:"email_verify"`
	PasswordResetTemplate  string `env:"NOTIFY_TEMPLATE_PASSWORD_RESET" envDefault:"password_reset"`
	OrderCreateTemplate    string `env:"NOTIFY_TEMPLATE_ORDER_CREATE" envDefault:"order_create"`
	OrderUpdateTemplate    string `env:"NOTIFY_TEMPLATE_ORDER_UPDATE" envDefault:"order_update"`
	NotifyWorkerPoolSize   int    `env:"NOTIFY_WORKER_POOL_SIZE" envDefault:"8"`
}

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load загружает конфигурацию из переменных окружения, опционально подхватывая .env файл.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать конфигурацию: %w", err)
	}

	return cfg, nil
}

// IsProduction возвращает true, если приложение запущено в production окружении.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
