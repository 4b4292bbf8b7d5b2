package jobs

import (
	"context"

	"github.com/wonny/midas/internal/analysis"
	"github.com/wonny/midas/pkg/logger"
)

// DailyReportJob runs the full analysis pipeline for one metal
// ⭐ SSOT: 일일 리포트 생성은 이 작업에서만 트리거
type DailyReportJob struct {
	service *analysis.Service
	metal   string
	logger  *logger.Logger
}

// NewDailyReportJob creates a daily report job for the given metal symbol
func NewDailyReportJob(service *analysis.Service, metal string, log *logger.Logger) *DailyReportJob {
	return &DailyReportJob{
		service: service,
		metal:   metal,
		logger:  log.WithComponent("jobs.daily_report"),
	}
}

func (j *DailyReportJob) Name() string {
	return "daily_report_" + j.metal
}

// Schedule 매일 09:00 (서버 로컬 시간)
func (j *DailyReportJob) Schedule() string {
	return "0 0 9 * * *"
}

func (j *DailyReportJob) Run(ctx context.Context) error {
	j.logger.WithField("metal", j.metal).Info("Running daily report job")

	report, err := j.service.Analyze(ctx, j.metal)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"metal":      j.metal,
		"report_id":  report.ID,
		"trend":      report.Prediction.Trend,
		"confidence": report.Prediction.Confidence,
	}).Info("Daily report generated")

	return nil
}
