package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	links map[int64]string
	err   error
	calls int
}

func (r *countingResolver) MemberForRoblox(ctx context.Context, robloxID int64) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.links[robloxID], nil
}

func TestCacheServesFreshEntries(t *testing.T) {
	inner := &countingResolver{links: map[int64]string{555: "m-1"}}
	cache := NewCache(inner, clockwork.NewFakeClock(), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cache.MemberForRoblox(ctx, 555)
		require.NoError(t, err)
		assert.Equal(t, "m-1", got)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	inner := &countingResolver{links: map[int64]string{555: "m-1"}}
	clock := clockwork.NewFakeClock()
	cache := NewCache(inner, clock, time.Minute)
	ctx := context.Background()

	_, err := cache.MemberForRoblox(ctx, 555)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	_, err = cache.MemberForRoblox(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCacheNeverCachesMisses(t *testing.T) {
	inner := &countingResolver{links: map[int64]string{}}
	cache := NewCache(inner, clockwork.NewFakeClock(), time.Minute)
	ctx := context.Background()

	got, err := cache.MemberForRoblox(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, got)

	// the member links between the two lookups
	inner.links[999] = "m-9"
	got, err = cache.MemberForRoblox(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, "m-9", got)
	assert.Equal(t, 2, inner.calls)
}

func TestCacheNeverCachesErrors(t *testing.T) {
	inner := &countingResolver{err: errors.New("service down")}
	cache := NewCache(inner, clockwork.NewFakeClock(), time.Minute)
	ctx := context.Background()

	_, err := cache.MemberForRoblox(ctx, 555)
	require.Error(t, err)

	inner.err = nil
	inner.links = map[int64]string{555: "m-1"}
	got, err := cache.MemberForRoblox(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, "m-1", got)
}

func TestCacheDefaultTTL(t *testing.T) {
	inner := &countingResolver{links: map[int64]string{555: "m-1"}}
	clock := clockwork.NewFakeClock()
	cache := NewCache(inner, clock, 0)
	ctx := context.Background()

	_, err := cache.MemberForRoblox(ctx, 555)
	require.NoError(t, err)

	clock.Advance(DefaultTTL - time.Second)
	_, err = cache.MemberForRoblox(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	clock.Advance(2 * time.Second)
	_, err = cache.MemberForRoblox(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
