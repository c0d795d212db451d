package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/trivia"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_MissThenHit(t *testing.T) {
	mr, client := newRedis(t)
	r := NewRedis(client, "", 10*time.Minute)
	ctx := context.Background()

	_, ok, err := r.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, sampleCategories))
	assert.True(t, mr.Exists(DefaultRedisKey))
	assert.Equal(t, 10*time.Minute, mr.TTL(DefaultRedisKey))

	cats, ok, err := r.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleCategories, cats)
}

func TestRedis_Expires(t *testing.T) {
	mr, client := newRedis(t)
	r := NewRedis(client, "cats", time.Minute)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, sampleCategories))
	mr.FastForward(2 * time.Minute)

	_, ok, err := r.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_CorruptValue(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set(DefaultRedisKey, "not json"))

	_, ok, err := NewRedis(client, "", 0).Get(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
}

func TestRedis_BackingCachedSource(t *testing.T) {
	_, client := newRedis(t)
	src := trivia.NewMockSource()
	src.Categories = sampleCategories

	// Two sources sharing one redis see a single upstream load.
	a := WithCategoryCache(src, NewRedis(client, "", time.Hour), nil)
	b := WithCategoryCache(src, NewRedis(client, "", time.Hour), nil)

	_, err := a.ListCategories(context.Background())
	require.NoError(t, err)
	cats, err := b.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, sampleCategories, cats)
	assert.Equal(t, 1, src.CategoryCalls)
}

func TestRedis_ServerDownFallsThrough(t *testing.T) {
	mr, client := newRedis(t)
	mr.Close()

	src := trivia.NewMockSource()
	src.Categories = sampleCategories
	cs := WithCategoryCache(src, NewRedis(client, "", time.Hour), nil)

	cats, err := cs.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleCategories, cats)
}
