package job

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"study-team-api/internal/config"
)

const jobTimeout = 5 * time.Minute

// NewScheduler registers the background jobs enabled in cfg. An empty schedule disables a job.
// The returned scheduler is not started.
func NewScheduler(cfg config.JobsConfig, sweeper OrphanSweeper, pruner NotificationPruner, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{logger})))

	if cfg.ImageSweepCron != "" && sweeper != nil {
		if _, err := c.AddJob(cfg.ImageSweepCron, NewImageSweepJob(sweeper, jobTimeout, logger)); err != nil {
			return nil, fmt.Errorf("invalid image sweep schedule %q: %w", cfg.ImageSweepCron, err)
		}
		logger.Info("Scheduled orphan image sweep", zap.String("schedule", cfg.ImageSweepCron))
	}

	if cfg.NotificationRetentionCron != "" && pruner != nil {
		retention := NewNotificationRetentionJob(pruner, cfg.NotificationRetentionDays, jobTimeout, logger)
		if _, err := c.AddJob(cfg.NotificationRetentionCron, retention); err != nil {
			return nil, fmt.Errorf("invalid notification retention schedule %q: %w", cfg.NotificationRetentionCron, err)
		}
		logger.Info("Scheduled notification retention",
			zap.String("schedule", cfg.NotificationRetentionCron),
			zap.Int("retention_days", cfg.NotificationRetentionDays),
		)
	}

	return c, nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
