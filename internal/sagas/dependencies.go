package sagas

import (
	"github.com/director74/saga-coordinator/internal/downstream"
	"github.com/director74/saga-coordinator/internal/notify"
)

// Dependencies bundles everything a saga needs beyond its own inputs: the
// downstream service clients and the notification fan-out.
type Dependencies struct {
	Clients *downstream.Clients
	Notify  *notify.FanOut
}
