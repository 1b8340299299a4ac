package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojinp/point-ledger/internal/models"
	"github.com/seojinp/point-ledger/internal/repository/memory"
)

func TestHistoryLog_Append_AssignsIncreasingIDsFromOne(t *testing.T) {
	log := memory.NewHistoryLog(0)
	ctx := context.Background()

	e1, err := log.Append(ctx, 1, 100, models.TxnCharge, 10)
	require.NoError(t, err)
	e2, err := log.Append(ctx, 2, 50, models.TxnUse, 20)
	require.NoError(t, err)
	e3, err := log.Append(ctx, 1, 30, models.TxnUse, 30)
	require.NoError(t, err)

	assert.Equal(t, int64(1), e1.ID)
	assert.Equal(t, int64(2), e2.ID)
	assert.Equal(t, int64(3), e3.ID)
}

func TestHistoryLog_Query_FiltersByUserInAppendOrder(t *testing.T) {
	log := memory.NewHistoryLog(0)
	ctx := context.Background()

	_, _ = log.Append(ctx, 1, 100, models.TxnCharge, 10)
	_, _ = log.Append(ctx, 2, 999, models.TxnCharge, 15)
	_, _ = log.Append(ctx, 1, 40, models.TxnUse, 20)

	entries, err := log.Query(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TxnCharge, entries[0].Type)
	assert.Equal(t, int64(100), entries[0].Amount)
	assert.Equal(t, models.TxnUse, entries[1].Type)
	assert.Equal(t, int64(40), entries[1].Amount)
	assert.Less(t, entries[0].ID, entries[1].ID)
}

func TestHistoryLog_Query_UnknownUser_ReturnsEmpty(t *testing.T) {
	log := memory.NewHistoryLog(0)

	entries, err := log.Query(context.Background(), 99)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryLog_ConcurrentAppends_IDsNeverReused(t *testing.T) {
	log := memory.NewHistoryLog(0)
	const n = 100

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, err := log.Append(context.Background(), 1, 1, models.TxnCharge, 0)
			assert.NoError(t, err)
			ids <- e.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
