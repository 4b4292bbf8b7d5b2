package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/midas/internal/analysis"
	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/external/metals"
	"github.com/wonny/midas/internal/external/worldnews"
	"github.com/wonny/midas/internal/report"
	"github.com/wonny/midas/internal/scheduler"
	"github.com/wonny/midas/internal/scheduler/jobs"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/database"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
	"github.com/wonny/midas/pkg/redis"
)

// schedulerMetals 자동 리포트를 생성할 금속 심볼
var schedulerMetals = []string{"XAU", "XAG", "XPT", "XPD"}

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

이 명령어는:
- 스케줄러 데몬 시작
- 등록된 작업 조회
- 작업 실행 이력 조회

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행
  status  - 작업 실행 상태 조회

Example:
  go run ./cmd/midas scheduler start
  go run ./cmd/midas scheduler list
  go run ./cmd/midas scheduler run daily_report_XAU`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- daily_report_XAU/XAG/XPT/XPD: 매일 오전 9시 (일일 분석 리포트)
- report_retention: 매일 새벽 3시 30분 (오래된 리포트 정리)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "작업 실행 상태 조회",
		RunE:  showJobStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Midas Scheduler ===")

	// Initialize dependencies
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	PrintList(sched.Jobs())
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Println("Registered jobs:")
	PrintList(sched.Jobs())

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job started (running in background)")
	return nil
}

func showJobStatus(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Println("Job Statistics:")
	fmt.Println()

	for _, jobName := range sched.Jobs() {
		history, err := sched.History(jobName)
		if err != nil {
			continue
		}

		fmt.Printf("📊 %s\n", jobName)
		fmt.Printf("   Total Runs: %d\n", len(history.Results))
		fmt.Printf("   Success Rate: %.1f%%\n", history.SuccessRate()*100)

		if last, ok := history.LastResult(); ok {
			fmt.Printf("   Last Run: %s (%s)\n",
				last.StartTime.Format("2006-01-02 15:04:05"), runOutcome(last))
		}

		fmt.Println()
	}

	return nil
}

func runOutcome(result scheduler.JobResult) string {
	if result.Success {
		return "success"
	}
	return "failed: " + result.Error
}

// initScheduler wires the scheduler with its jobs and dependencies
func initScheduler() (*scheduler.Scheduler, func(), error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to Redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	priceCache := redis.NewCache(redisClient, "midas")
	rateLimiter := redis.NewRateLimiter(redisClient, "midas")

	// 5. Create external API clients
	metalsClient := metals.NewClient(
		httputil.New(log).WithRateLimiter(rateLimiter, redis.MetalsRateLimit),
		cfg.MetalsAPI, log)
	newsClient := worldnews.NewClient(
		httputil.New(log).WithRateLimiter(rateLimiter, redis.WorldNewsRateLimit),
		cfg.WorldNews, log)

	// 6. Create report store and analysis service
	reportRepo := report.NewRepository(db.Pool)
	builder := report.NewBuilder(log.Zerolog())
	noise := contracts.NewSystemNoise()
	service := analysis.NewService(cfg, metalsClient, newsClient, builder, reportRepo, priceCache, noise, log)

	// 7. Create scheduler
	sched := scheduler.New(log)

	// 8. Register jobs
	for _, metal := range schedulerMetals {
		if err := sched.AddJob(jobs.NewDailyReportJob(service, metal, log)); err != nil {
			db.Close()
			redisClient.Close()
			return nil, nil, err
		}
	}
	if err := sched.AddJob(jobs.NewRetentionJob(reportRepo, cfg.Reports.RetentionDays, log)); err != nil {
		db.Close()
		redisClient.Close()
		return nil, nil, err
	}

	cleanup := func() {
		redisClient.Close()
		db.Close()
	}

	return sched, cleanup, nil
}
