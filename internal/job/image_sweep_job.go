package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"study-team-api/internal/imagegc"
)

// OrphanSweeper deletes every upload no post references
type OrphanSweeper interface {
	CollectOrphansGlobal(ctx context.Context) (*imagegc.Result, error)
}

// ImageSweepJob runs a global orphan image sweep
type ImageSweepJob struct {
	sweeper OrphanSweeper
	timeout time.Duration
	logger  *zap.Logger
}

// NewImageSweepJob creates a new ImageSweepJob instance
func NewImageSweepJob(sweeper OrphanSweeper, timeout time.Duration, logger *zap.Logger) *ImageSweepJob {
	return &ImageSweepJob{
		sweeper: sweeper,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes the sweep. Failures are logged; the next scheduled run starts from scratch.
func (j *ImageSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.logger.Info("Starting orphan image sweep")

	result, err := j.sweeper.CollectOrphansGlobal(ctx)
	if err != nil {
		j.logger.Error("Orphan image sweep failed", zap.Error(err))
		return
	}

	j.logger.Info("Orphan image sweep completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("referenced", result.Referenced),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", result.Failed),
	)
}
