package metrics

import (
	"time"
)

// IncrementPostCreated increments post creation counter
func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment counter for main comments or replies
func (m *Metrics) IncrementCommentCreated(isReply bool) {
	m.safeExecute("IncrementCommentCreated", func() {
		kind := "comment"
		if isReply {
			kind = "reply"
		}
		m.CommentCreatedTotal.WithLabelValues(kind).Inc()
	})
}

// IncrementNotificationCreated increments notification counter by kind
func (m *Metrics) IncrementNotificationCreated(kind string) {
	m.safeExecute("IncrementNotificationCreated", func() {
		m.NotificationCreatedTotal.WithLabelValues(kind).Inc()
	})
}

// SetTeamsTotal sets total teams gauge
func (m *Metrics) SetTeamsTotal(count int64) {
	m.safeExecute("SetTeamsTotal", func() {
		m.TeamsTotal.Set(float64(count))
	})
}

// SetPostsTotal sets total posts gauge
func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(count))
	})
}

// RecordImageSweep records the outcome of an orphan image sweep
func (m *Metrics) RecordImageSweep(scope string, scanned, deleted int, duration time.Duration) {
	m.safeExecute("RecordImageSweep", func() {
		m.ImagesDeletedTotal.WithLabelValues(scope).Add(float64(deleted))
		m.ImageSweepDuration.WithLabelValues(scope).Observe(duration.Seconds())
		m.ImageSweepScanned.WithLabelValues(scope).Set(float64(scanned))
	})
}

// RecordImageDeleteError counts a failed upload deletion
func (m *Metrics) RecordImageDeleteError() {
	m.safeExecute("RecordImageDeleteError", func() {
		m.ImageDeleteErrorsTotal.Inc()
	})
}
