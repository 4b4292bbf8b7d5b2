package jobs

import (
	"context"
	"time"

	"github.com/wonny/midas/internal/report"
	"github.com/wonny/midas/pkg/logger"
)

// RetentionJob prunes stored reports past the retention window
type RetentionJob struct {
	repo          *report.Repository
	retentionDays int
	logger        *logger.Logger
}

// NewRetentionJob creates a retention job keeping retentionDays of reports
func NewRetentionJob(repo *report.Repository, retentionDays int, log *logger.Logger) *RetentionJob {
	return &RetentionJob{
		repo:          repo,
		retentionDays: retentionDays,
		logger:        log.WithComponent("jobs.retention"),
	}
}

func (j *RetentionJob) Name() string {
	return "report_retention"
}

// Schedule 매일 03:30 (트래픽이 적은 시간대)
func (j *RetentionJob) Schedule() string {
	return "0 30 3 * * *"
}

func (j *RetentionJob) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.repo.Prune(ctx, cutoff)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"cutoff":  cutoff.Format("2006-01-02"),
		"deleted": deleted,
	}).Info("Old reports pruned")

	return nil
}
