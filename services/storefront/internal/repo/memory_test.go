package repo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/shared/pkg/models"
)

func TestUsersMemoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewUsersMemory()

	_, ok, err := r.Find(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	u := models.User{Email: "a@x.com", FullName: "A", PasswordHash: "h1"}
	require.NoError(t, r.Create(ctx, u))

	got, ok, err := r.Find(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestUsersMemoryDuplicateLeavesRecord(t *testing.T) {
	ctx := context.Background()
	r := NewUsersMemory()
	require.NoError(t, r.Create(ctx, models.User{Email: "a@x.com", FullName: "First", PasswordHash: "h1"}))

	err := r.Create(ctx, models.User{Email: "a@x.com", FullName: "Second", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, _, _ := r.Find(ctx, "a@x.com")
	assert.Equal(t, "First", got.FullName)
	assert.Equal(t, "h1", got.PasswordHash)
}

func TestUsersMemoryConcurrentSignupSingleWinner(t *testing.T) {
	ctx := context.Background()
	r := NewUsersMemory()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if r.Create(ctx, models.User{Email: "race@x.com", FullName: fmt.Sprint(i)}) == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins.Load())
}

func TestOrdersMemoryAppendSnapshot(t *testing.T) {
	ctx := context.Background()
	r := NewOrdersMemory()
	require.NoError(t, r.Append(ctx, models.Order{OrderID: "1"}))
	require.NoError(t, r.Append(ctx, models.Order{OrderID: "2"}))

	snap := r.Orders()
	require.Len(t, snap, 2)
	snap[0].OrderID = "mutated"
	assert.Equal(t, "1", r.Orders()[0].OrderID)
}
