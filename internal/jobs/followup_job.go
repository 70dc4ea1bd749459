package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FollowupJobName is the name of the no-response sweep job
const FollowupJobName = "inquiry_followup"

// InquirySweepService defines the interface for the no-response sweep.
// This interface allows the job to call the service without importing the
// service package directly.
type InquirySweepService interface {
	// SweepStaleInquiries marks inquiries older than the cutoff as
	// no_response and closes out requests where every supplier has now
	// either responded or timed out. Returns the number of inquiries swept
	// and the number of requests moved to quotes_received.
	SweepStaleInquiries(ctx context.Context, olderThan time.Duration) (swept int, closed int, err error)
}

// FollowupJob expires inquiries that never drew a reply so requests do not
// wait forever on silent suppliers.
type FollowupJob struct {
	service   InquirySweepService
	logger    *zap.Logger
	olderThan time.Duration
	timeout   time.Duration
}

// NewFollowupJob creates a new no-response sweep job.
func NewFollowupJob(service InquirySweepService, logger *zap.Logger, olderThan time.Duration) *FollowupJob {
	return &FollowupJob{
		service:   service,
		logger:    logger,
		olderThan: olderThan,
		timeout:   5 * time.Minute,
	}
}

// Run executes the sweep. This is called by the scheduler according to the
// cron expression.
func (j *FollowupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	swept, closed, err := j.service.SweepStaleInquiries(ctx, j.olderThan)
	if err != nil {
		j.logger.Error("inquiry followup sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("inquiry followup sweep completed",
		zap.Int("inquiries_expired", swept),
		zap.Int("requests_closed_out", closed),
		zap.Duration("duration", time.Since(start)))
}
