package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"study-team-api/internal/config"
	"study-team-api/internal/imagegc"
)

// MockSweeper is a mock implementation of OrphanSweeper
type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) CollectOrphansGlobal(ctx context.Context) (*imagegc.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagegc.Result), args.Error(1)
}

// MockPruner is a mock implementation of NotificationPruner
type MockPruner struct {
	mock.Mock
}

func (m *MockPruner) PruneRead(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func TestImageSweepJob_Run_Success(t *testing.T) {
	// Given
	sweeper := new(MockSweeper)
	sweeper.On("CollectOrphansGlobal", mock.Anything).Return(&imagegc.Result{
		Scope:   imagegc.ScopeGlobal,
		Scanned: 3,
		Deleted: []string{"static/uploads/b.png"},
	}, nil).Once()
	core, logs := observer.New(zap.InfoLevel)

	// When
	NewImageSweepJob(sweeper, time.Second, zap.New(core)).Run()

	// Then
	sweeper.AssertExpectations(t)
	entries := logs.FilterMessage("Orphan image sweep completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["deleted"])
}

func TestImageSweepJob_Run_ErrorIsLogged(t *testing.T) {
	sweeper := new(MockSweeper)
	sweeper.On("CollectOrphansGlobal", mock.Anything).Return(nil, errors.New("db down")).Once()
	core, logs := observer.New(zap.ErrorLevel)

	NewImageSweepJob(sweeper, time.Second, zap.New(core)).Run()

	sweeper.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Orphan image sweep failed").Len())
}

func TestNotificationRetentionJob_Run(t *testing.T) {
	pruner := new(MockPruner)
	pruner.On("PruneRead", mock.Anything, 30).Return(int64(4), nil).Once()

	NewNotificationRetentionJob(pruner, 30, time.Second, zap.NewNop()).Run()

	pruner.AssertExpectations(t)
}

func TestNotificationRetentionJob_DisabledRetention(t *testing.T) {
	pruner := new(MockPruner)

	NewNotificationRetentionJob(pruner, 0, time.Second, zap.NewNop()).Run()

	pruner.AssertNotCalled(t, "PruneRead", mock.Anything, mock.Anything)
}

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.JobsConfig
		wantJobs  int
		wantError bool
	}{
		{"성공: 두 작업 모두 등록", config.JobsConfig{ImageSweepCron: "0 3 * * *", NotificationRetentionCron: "0 4 * * *", NotificationRetentionDays: 30}, 2, false},
		{"성공: 이미지 정리 비활성화", config.JobsConfig{NotificationRetentionCron: "0 4 * * *", NotificationRetentionDays: 30}, 1, false},
		{"실패: 잘못된 cron 표현식", config.JobsConfig{ImageSweepCron: "every day"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewScheduler(tt.cfg, new(MockSweeper), new(MockPruner), zap.NewNop())
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.Entries(), tt.wantJobs)
		})
	}
}
