package sagas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/director74/saga-coordinator/internal/oplog"
)

func TestRollback_ReplaysStartMarkersInReverseOrder(t *testing.T) {
	log := oplog.New()
	log.Append(AccountCreationStart, "1")
	log.Append(AccountCreationComplete, "1")
	log.Append(UsersRoleSetStart, "1")
	log.Append(UsersRoleSetComplete, "1")
	log.Append(StoreRoleSetStart, "1")
	log.Append(StoreRoleSetComplete, "1")

	var undone []string
	registry := Registry{
		AccountCreationStart: func(ctx context.Context, id string) error {
			undone = append(undone, "account:"+id)
			return nil
		},
		UsersRoleSetStart: func(ctx context.Context, id string) error {
			undone = append(undone, "users_role:"+id)
			return nil
		},
		StoreRoleSetStart: func(ctx context.Context, id string) error {
			undone = append(undone, "store_role:"+id)
			return nil
		},
	}

	Rollback(context.Background(), "test_saga", log, registry)

	assert.Equal(t, []string{"store_role:1", "users_role:1", "account:1"}, undone)
}

func TestRollback_SwallowsCompensationErrorsAndContinues(t *testing.T) {
	log := oplog.New()
	log.Append(AccountCreationStart, "1")
	log.Append(UsersRoleSetStart, "1")

	var undone []string
	registry := Registry{
		AccountCreationStart: func(ctx context.Context, id string) error {
			undone = append(undone, "account")
			return nil
		},
		UsersRoleSetStart: func(ctx context.Context, id string) error {
			undone = append(undone, "users_role")
			return assert.AnError
		},
	}

	assert.NotPanics(t, func() {
		Rollback(context.Background(), "test_saga", log, registry)
	})
	assert.Equal(t, []string{"users_role", "account"}, undone, "a failing compensation does not stop the walk")
}

func TestRollback_SkipsMarkersWithNoRegisteredCompensation(t *testing.T) {
	log := oplog.New()
	log.Append(WarehouseRoleSetStart, "1")
	log.Append(WarehouseRoleSetComplete, "1")

	calls := 0
	registry := Registry{
		AccountCreationStart: func(ctx context.Context, id string) error {
			calls++
			return nil
		},
	}
	Rollback(context.Background(), "test_saga", log, registry)
	assert.Equal(t, 0, calls)
}

func TestRollback_EmptyLogIsNoOp(t *testing.T) {
	log := oplog.New()
	assert.NotPanics(t, func() {
		Rollback(context.Background(), "test_saga", log, Registry{})
	})
}
