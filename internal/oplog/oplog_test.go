package oplog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_AppendPreservesOrder(t *testing.T) {
	log := New()

	log.Append("account_creation_start", "saga-1")
	log.Append("account_creation_complete", "saga-1")
	log.Append("users_role_set_start", "42")

	snapshot := log.Snapshot()
	assert.Len(t, snapshot, 3)
	assert.Equal(t, Marker{Kind: "account_creation_start", ID: "saga-1"}, snapshot[0])
	assert.Equal(t, Marker{Kind: "account_creation_complete", ID: "saga-1"}, snapshot[1])
	assert.Equal(t, Marker{Kind: "users_role_set_start", ID: "42"}, snapshot[2])
	assert.Equal(t, 3, log.Len())
}

func TestLog_SnapshotIsACopy(t *testing.T) {
	log := New()
	log.Append("start", "1")

	snapshot := log.Snapshot()
	snapshot[0].ID = "mutated"

	assert.Equal(t, "1", log.Snapshot()[0].ID)
}

func TestLog_EmptyLog(t *testing.T) {
	log := New()
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, log.Snapshot())
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append("concurrent", "x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, log.Len())
}
