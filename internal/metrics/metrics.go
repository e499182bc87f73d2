// Package metrics экспонирует Prometheus метрики саг координатора.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SagaRuns считает завершения саг по имени и исходу (success|rolled_back).
	SagaRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_runs_total",
			Help: "Количество завершённых запусков саги по исходу",
		},
		[]string{"saga", "outcome"},
	)

	// SagaStepDuration измеряет время выполнения отдельного шага саги.
	SagaStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saga_step_duration_seconds",
			Help:    "Время выполнения шага саги в секундах",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"saga", "step"},
	)

	// SagaCompensations считает компенсации, выданные откатчиком, по маркеру.
	SagaCompensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_compensations_total",
			Help: "Количество компенсирующих вызовов, выданных откатчиком",
		},
		[]string{"saga", "marker"},
	)

	// NotificationSendFailures считает проглоченные ошибки отправки уведомлений.
	NotificationSendFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_send_failures_total",
			Help: "Количество неудачных отправок уведомлений (ошибка проглочена)",
		},
		[]string{"channel"},
	)

	// SagaFailures считает ошибки, отображённые в HTTP 500, по их виду (kind):
	// ответы 5xx и сбои транспорта нижестоящих сервисов, а также ошибки,
	// не предусмотренные таксономией.
	SagaFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_failures_total",
			Help: "Количество ошибок координатора, отображённых в HTTP 500",
		},
		[]string{"kind"},
	)
)

// Handler возвращает http.Handler для монтирования на /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
