package bom

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"restaurant/internal/cache"
	"restaurant/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubBuilder struct {
	mu    sync.Mutex
	graph models.BOMGraph
	err   error
	delay time.Duration
	calls int32
}

func (b *stubBuilder) Build(_ context.Context) (models.BOMGraph, error) {
	atomic.AddInt32(&b.calls, 1)
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	graph := make(models.BOMGraph, len(b.graph))
	for k, v := range b.graph {
		graph[k] = append([]int(nil), v...)
	}
	return graph, nil
}

func (b *stubBuilder) setGraph(graph models.BOMGraph) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.graph = graph
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("cache store down")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("cache store down")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("cache store down")
}

func TestGraphCacheMissBuildsAndCaches(t *testing.T) {
	builder := &stubBuilder{graph: models.BOMGraph{1: {2, 3}}}
	graphCache := NewGraphCache(cache.NewMemoryStore(), builder, zap.NewNop())

	graph, err := graphCache.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 3}, graph.Ingredients(1))

	_, err = graphCache.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&builder.calls), "second get should hit the cache")
}

func TestGraphCacheInvalidateTriggersRebuild(t *testing.T) {
	builder := &stubBuilder{graph: models.BOMGraph{1: {2}}}
	graphCache := NewGraphCache(cache.NewMemoryStore(), builder, zap.NewNop())

	graph, err := graphCache.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, graph.Ingredients(1))

	// the edge set changes and the cache is told about it
	builder.setGraph(models.BOMGraph{1: {2, 3}})
	graphCache.Invalidate(context.Background())

	graph, err = graphCache.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 3}, graph.Ingredients(1))
}

func TestGraphCacheSingleFlight(t *testing.T) {
	builder := &stubBuilder{graph: models.BOMGraph{1: {2}}, delay: 50 * time.Millisecond}
	graphCache := NewGraphCache(cache.NewMemoryStore(), builder, zap.NewNop())

	const callers = 10
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			graph, err := graphCache.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, []int{2}, graph.Ingredients(1))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&builder.calls), "concurrent misses must collapse into one build")
}

func TestGraphCacheFailOpenOnStoreOutage(t *testing.T) {
	builder := &stubBuilder{graph: models.BOMGraph{7: {8}}}
	graphCache := NewGraphCache(failingStore{}, builder, zap.NewNop())

	graph, err := graphCache.Get(context.Background())
	assert.NoError(t, err, "cache store outage must not surface to the caller")
	assert.Equal(t, []int{8}, graph.Ingredients(7))

	// invalidation failure is tolerated as well
	graphCache.Invalidate(context.Background())
}

func TestGraphCachePropagatesBuilderError(t *testing.T) {
	builder := &stubBuilder{err: errors.New("store unavailable")}
	graphCache := NewGraphCache(cache.NewMemoryStore(), builder, zap.NewNop())

	_, err := graphCache.Get(context.Background())
	assert.Error(t, err)
}
