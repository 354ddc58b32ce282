package importer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCache_ServesFreshCounts(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	cache := newStatsCache(5 * time.Second)
	cache.now = func() time.Time { return now }

	var loads int
	load := func(context.Context) (*Counts, error) {
		loads++
		return &Counts{Users: int64(loads)}, nil
	}

	first, err := cache.get(context.Background(), load)
	require.NoError(t, err)
	second, err := cache.get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)

	now = now.Add(6 * time.Second)
	third, err := cache.get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
	assert.Equal(t, int64(2), third.Users)
}

func TestStatsCache_Invalidate(t *testing.T) {
	cache := newStatsCache(time.Minute)

	var loads int
	load := func(context.Context) (*Counts, error) {
		loads++
		return &Counts{}, nil
	}

	_, _ = cache.get(context.Background(), load)
	cache.invalidate()
	_, _ = cache.get(context.Background(), load)
	assert.Equal(t, 2, loads)
}

func TestStatsCache_ZeroTTLDisables(t *testing.T) {
	cache := newStatsCache(0)

	var loads int
	load := func(context.Context) (*Counts, error) {
		loads++
		return &Counts{}, nil
	}

	_, _ = cache.get(context.Background(), load)
	_, _ = cache.get(context.Background(), load)
	assert.Equal(t, 2, loads)
}

func TestStatsCache_ErrorNotCached(t *testing.T) {
	cache := newStatsCache(time.Minute)

	_, err := cache.get(context.Background(), func(context.Context) (*Counts, error) {
		return nil, errors.New("db down")
	})
	assert.Error(t, err)

	counts, err := cache.get(context.Background(), func(context.Context) (*Counts, error) {
		return &Counts{Posts: 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Posts)
}

func TestStatsCache_ConcurrentMissesShareLoad(t *testing.T) {
	cache := newStatsCache(time.Minute)

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (*Counts, error) {
		loads.Add(1)
		<-release
		return &Counts{Users: 2}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts, err := cache.get(context.Background(), load)
			assert.NoError(t, err)
			assert.Equal(t, int64(2), counts.Users)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), loads.Load())
}

func TestStatsCache_InvalidateDuringLoadDropsResult(t *testing.T) {
	cache := newStatsCache(time.Minute)

	var loads int
	stale := func(context.Context) (*Counts, error) {
		loads++
		cache.invalidate()
		return &Counts{Users: 0}, nil
	}

	counts, err := cache.get(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Users)

	counts, err = cache.get(context.Background(), func(context.Context) (*Counts, error) {
		loads++
		return &Counts{Users: 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Users)
	assert.Equal(t, 2, loads)
}
