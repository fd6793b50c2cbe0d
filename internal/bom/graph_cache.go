package bom

import (
	"context"
	"encoding/json"
	"errors"

	"restaurant/internal/cache"
	"restaurant/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const graphCacheKey = "bom:graph"

// GraphCache is a cache-aside memoization layer over the graph builder.
// Cache-store failures degrade reads to a direct rebuild from the
// relational store; they are never surfaced to the caller.
type GraphCache struct {
	store   cache.Store
	builder GraphBuilder
	group   singleflight.Group
	logger  *zap.Logger
}

func NewGraphCache(store cache.Store, builder GraphBuilder, logger *zap.Logger) *GraphCache {
	return &GraphCache{
		store:   store,
		builder: builder,
		logger:  logger,
	}
}

// Get returns the cached graph, rebuilding it on a miss. Concurrent
// misses collapse into a single rebuild.
func (c *GraphCache) Get(ctx context.Context) (models.BOMGraph, error) {
	raw, err := c.store.Get(ctx, graphCacheKey)
	if err == nil {
		var graph models.BOMGraph
		decodeErr := json.Unmarshal(raw, &graph)
		if decodeErr == nil {
			return graph, nil
		}
		c.logger.Warn("discarding undecodable cached graph", zap.Error(decodeErr))
	} else if !errors.Is(err, cache.ErrMiss) {
		c.logger.Warn("cache store read failed, rebuilding from store", zap.Error(err))
	}

	result, err, _ := c.group.Do(graphCacheKey, func() (interface{}, error) {
		graph, err := c.builder.Build(ctx)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(graph); err == nil {
			if err := c.store.Set(ctx, graphCacheKey, raw); err != nil {
				c.logger.Warn("cache store write failed", zap.Error(err))
			}
		}

		return graph, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(models.BOMGraph), nil
}

// Invalidate drops the cached graph. Called after every successful
// ingredient edge write. A delete failure leaves the cache stale until
// the next invalidation or miss; it is logged so the staleness window is
// observable, but the write that triggered it has already succeeded.
func (c *GraphCache) Invalidate(ctx context.Context) {
	if err := c.store.Delete(ctx, graphCacheKey); err != nil {
		c.logger.Error("graph cache invalidation failed, serving stale graph until next rebuild", zap.Error(err))
	}
}
