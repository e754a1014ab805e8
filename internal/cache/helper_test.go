package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out payload
	found, err := GetJSON(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	in := payload{Name: "alice", Count: 3}
	require.NoError(t, SetJSON(ctx, "p:1", in, time.Minute))

	found, err = GetJSON(ctx, "p:1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetSetJSON_NilClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	// Without Redis the helpers degrade to no-ops.
	var out payload
	found, err := GetJSON(ctx, "any", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "any", payload{}, time.Minute))
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fetched", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "a:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Name)

	// The second read is served from the cache.
	var second payload
	require.NoError(t, Aside(ctx, "a:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_FetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	var out payload
	err := Aside(ctx, "a:2", &out, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// A failed fetch must not poison the cache.
	found, err := GetJSON(ctx, "a:2", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_Expiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "v", Count: calls}
			return nil
		}
	}

	var out payload
	require.NoError(t, Aside(ctx, "a:3", &out, time.Second, fetch(&out)))
	mr.FastForward(2 * time.Second)

	require.NoError(t, Aside(ctx, "a:3", &out, time.Second, fetch(&out)))
	assert.Equal(t, 2, calls)
}
