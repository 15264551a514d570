package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	in := cachedUser{ID: 1, Name: "Jane"}
	require.NoError(t, SetJSON(ctx, UserKey(1), in, time.Minute))

	var out cachedUser
	found, err := GetJSON(ctx, UserKey(1), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSON_Miss(t *testing.T) {
	setupMiniredis(t)

	var out cachedUser
	found, err := GetJSON(context.Background(), UserKey(404), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			calls++
			*dest = cachedUser{ID: 2, Name: "Sam"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)

	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls, "second read must come from cache")
	assert.Equal(t, first, second)
}

func TestInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProfileKey(3), cachedUser{ID: 3}, time.Minute))
	InvalidateProfile(ctx, 3)

	var out cachedUser
	found, err := GetJSON(ctx, ProfileKey(3), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpers_NilClientPassThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{}, time.Minute))

	var out cachedUser
	found, err := GetJSON(ctx, UserKey(1), &out)
	assert.NoError(t, err)
	assert.False(t, found)

	// Aside must still fetch without a client.
	called := false
	require.NoError(t, Aside(ctx, UserKey(1), &out, time.Minute, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}
