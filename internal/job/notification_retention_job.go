package job

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NotificationPruner deletes read notifications past their retention
type NotificationPruner interface {
	PruneRead(ctx context.Context, retentionDays int) (int64, error)
}

// NotificationRetentionJob removes old read notifications
type NotificationRetentionJob struct {
	pruner        NotificationPruner
	retentionDays int
	timeout       time.Duration
	logger        *zap.Logger
}

// NewNotificationRetentionJob creates a new NotificationRetentionJob instance
func NewNotificationRetentionJob(pruner NotificationPruner, retentionDays int, timeout time.Duration, logger *zap.Logger) *NotificationRetentionJob {
	return &NotificationRetentionJob{
		pruner:        pruner,
		retentionDays: retentionDays,
		timeout:       timeout,
		logger:        logger,
	}
}

func (j *NotificationRetentionJob) Run() {
	if j.retentionDays <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	deleted, err := j.pruner.PruneRead(ctx, j.retentionDays)
	if err != nil {
		j.logger.Error("Failed to prune read notifications",
			zap.Int("retention_days", j.retentionDays),
			zap.Error(err),
		)
		return
	}

	j.logger.Info("Pruned read notifications",
		zap.Int64("deleted", deleted),
		zap.Int("retention_days", j.retentionDays),
	)
}
