package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"study-team-api/internal/imagegc"
)

// ImageCollector reclaims uploaded images that no post references any more
type ImageCollector interface {
	ExtractReferences(content string) imagegc.RefSet
	DiffOnEdit(oldContent, newContent string) imagegc.RefSet
	Reclaim(ctx context.Context, candidates imagegc.RefSet) ([]string, error)
	CollectOrphansScoped(ctx context.Context, window time.Duration) (*imagegc.Result, error)
	CollectOrphansGlobal(ctx context.Context) (*imagegc.Result, error)
}

// imageCleaner runs collector passes after content mutations. Every failure is logged and
// swallowed so that the mutation that triggered it still succeeds.
type imageCleaner struct {
	collector ImageCollector
	window    time.Duration
	logger    *zap.Logger
}

func (c imageCleaner) reclaim(ctx context.Context, candidates imagegc.RefSet) {
	if c.collector == nil || len(candidates) == 0 {
		return
	}
	if _, err := c.collector.Reclaim(ctx, candidates); err != nil {
		c.logger.Error("Failed to reclaim images",
			zap.Strings("candidates", candidates.Sorted()),
			zap.Error(err),
		)
	}
}

func (c imageCleaner) sweepRecent(ctx context.Context) {
	if c.collector == nil || c.window <= 0 {
		return
	}
	if _, err := c.collector.CollectOrphansScoped(ctx, c.window); err != nil {
		c.logger.Error("Scoped image sweep failed", zap.Error(err))
	}
}

func (c imageCleaner) references(content string) imagegc.RefSet {
	if c.collector == nil {
		return imagegc.RefSet{}
	}
	return c.collector.ExtractReferences(content)
}

func (c imageCleaner) removed(oldContent, newContent string) imagegc.RefSet {
	if c.collector == nil {
		return imagegc.RefSet{}
	}
	return c.collector.DiffOnEdit(oldContent, newContent)
}
