package scheduler

import (
	"context"
	"time"
)

// historyCap 작업별로 보관할 최근 실행 결과 수
const historyCap = 100

// Job represents a scheduled job
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	// Name returns the job name
	Name() string

	// Run executes the job
	Run(ctx context.Context) error

	// Schedule returns the cron expression (초 필드 포함 6필드)
	Schedule() string
}

// JobResult represents the result of a job execution
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory stores recent execution results for one job
type JobHistory struct {
	Results []JobResult
}

// AddResult appends a result, keeping at most historyCap entries
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)
	if len(h.Results) > historyCap {
		h.Results = h.Results[len(h.Results)-historyCap:]
	}
}

// LastResult returns the most recent result, if any
func (h *JobHistory) LastResult() (JobResult, bool) {
	if len(h.Results) == 0 {
		return JobResult{}, false
	}
	return h.Results[len(h.Results)-1], true
}

// SuccessRate returns the fraction of successful runs (0.0 - 1.0)
func (h *JobHistory) SuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0.0
	}

	success := 0
	for _, result := range h.Results {
		if result.Success {
			success++
		}
	}
	return float64(success) / float64(len(h.Results))
}
