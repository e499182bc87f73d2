package sagas

import (
	"strconv"
	"time"

	"github.com/director74/saga-coordinator/internal/metrics"
	"github.com/director74/saga-coordinator/internal/oplog"
)

// runStep appends Start immediately before invoking call, and appends Complete
// only once call has confirmed success. A step whose call fails after the
// downstream has already committed the side effect (a timeout, a dropped
// response) still leaves its Start marker behind, so Rollback can compensate
// it; a step that never ran at all leaves no marker.
func runStep[T any](log *oplog.Log, saga, step string, start, complete oplog.MarkerKind, id string, call func() (T, error)) (T, error) {
	log.Append(start, id)

	began := time.Now()
	v, err := call()
	metrics.SagaStepDuration.WithLabelValues(saga, step).Observe(time.Since(began).Seconds())
	if err != nil {
		var zero T
		return zero, err
	}

	log.Append(complete, id)
	return v, nil
}

// runStepVoid is runStep for calls with no return value beyond error.
func runStepVoid(log *oplog.Log, saga, step string, start, complete oplog.MarkerKind, id string, call func() error) error {
	_, err := runStep(log, saga, step, start, complete, id, func() (struct{}, error) {
		return struct{}{}, call()
	})
	return err
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func parseUint(s string) uint {
	v, _ := strconv.ParseUint(s, 10, 64)
	return uint(v)
}
