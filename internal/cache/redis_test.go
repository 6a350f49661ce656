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

type profile struct {
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

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *profile) func() error {
		return func() error {
			fetches++
			*dest = profile{ID: 7, Name: "cached person"}
			return nil
		}
	}

	var first profile
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached person", first.Name)

	var second profile
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must come from the cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorStoresNothing(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest profile
	err := Aside(ctx, UserKey(1), &dest, UserTTL, func() error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, mr.Exists(UserKey(1)))
}

func TestAside_CorruptEntryRefetches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(2), "{not json"))

	var dest profile
	fetched := false
	err := Aside(ctx, UserKey(2), &dest, UserTTL, func() error {
		fetched = true
		dest = profile{ID: 2, Name: "fresh"}
		return nil
	})
	require.NoError(t, err)
	assert.True(t, fetched)

	got, err := mr.Get(UserKey(2))
	require.NoError(t, err)
	assert.Contains(t, got, "fresh")
}

func TestAside_WithoutClientFallsThrough(t *testing.T) {
	SetClient(nil)

	var dest profile
	err := Aside(context.Background(), UserKey(3), &dest, time.Minute, func() error {
		dest = profile{ID: 3}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), dest.ID)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest profile
	require.NoError(t, Aside(ctx, UserKey(4), &dest, UserTTL, func() error {
		dest = profile{ID: 4}
		return nil
	}))
	require.True(t, mr.Exists(UserKey(4)))

	InvalidateUser(ctx, 4)
	assert.False(t, mr.Exists(UserKey(4)))
}
