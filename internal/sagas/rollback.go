package sagas

import (
	"context"

	"github.com/director74/saga-coordinator/internal/logging"
	"github.com/director74/saga-coordinator/internal/metrics"
	"github.com/director74/saga-coordinator/internal/oplog"
)

// Compensator undoes the side effect recorded by one Start marker, given the
// identifier carried by that marker.
type Compensator func(ctx context.Context, id string) error

// Registry maps a Start marker kind to the compensation that undoes it.
// A marker kind absent from the registry (Complete markers, or a step with no
// compensation) is skipped by Rollback.
type Registry map[oplog.MarkerKind]Compensator

// Rollback replays log in reverse insertion order, invoking the registered
// compensation for each Start marker found. Every compensation is attempted —
// a failing compensation is logged and swallowed, never aborting the walk.
func Rollback(ctx context.Context, sagaName string, log *oplog.Log, registry Registry) {
	snapshot := log.Snapshot()

	for i := len(snapshot) - 1; i >= 0; i-- {
		marker := snapshot[i]
		compensate, ok := registry[marker.Kind]
		if !ok {
			continue
		}

		metrics.SagaCompensations.WithLabelValues(sagaName, string(marker.Kind)).Inc()
		if err := compensate(ctx, marker.ID); err != nil {
			logging.Warn().
				Err(err).
				Str("saga", sagaName).
				Str("marker", string(marker.Kind)).
				Str("id", marker.ID).
				Msg("компенсация завершилась ошибкой, продолжаем откат")
		}
	}
}
