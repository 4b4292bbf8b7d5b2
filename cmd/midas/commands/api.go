package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/midas/internal/analysis"
	"github.com/wonny/midas/internal/api"
	"github.com/wonny/midas/internal/api/handlers"
	"github.com/wonny/midas/internal/backtest"
	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/external/fred"
	"github.com/wonny/midas/internal/external/metals"
	"github.com/wonny/midas/internal/external/worldnews"
	"github.com/wonny/midas/internal/report"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/database"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
	"github.com/wonny/midas/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 분석 트리거 / 리포트 조회 엔드포인트 제공
- 리포트 실시간 스트림(websocket) 제공

Endpoints:
  GET  /health                - Health check
  POST /api/analyze/{metal}   - 분석 실행 및 리포트 생성
  GET  /api/reports/{metal}   - 저장된 리포트 조회
  GET  /api/prices            - 현재 시세 조회
  POST /api/backtest          - 백테스트 실행
  WS   /ws/reports            - 리포트 스트림

Example:
  go run ./cmd/midas api
  go run ./cmd/midas api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Midas API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (비활성화 시 캐시 미스로 동작)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	priceCache := redis.NewCache(redisClient, "midas")
	rateLimiter := redis.NewRateLimiter(redisClient, "midas")

	// 5. Create external API clients (API별 쿼터로 레이트 리밋)
	metalsClient := metals.NewClient(
		httputil.New(log).WithRateLimiter(rateLimiter, redis.MetalsRateLimit),
		cfg.MetalsAPI, log)
	newsClient := worldnews.NewClient(
		httputil.New(log).WithRateLimiter(rateLimiter, redis.WorldNewsRateLimit),
		cfg.WorldNews, log)
	fredClient := fred.NewClient(
		httputil.New(log).WithRateLimiter(rateLimiter, redis.FREDRateLimit),
		cfg.FRED, log)

	// 6. Create report store and builder
	reportRepo := report.NewRepository(db.Pool)
	builder := report.NewBuilder(log.Zerolog())

	// 7. Create analysis service
	noise := contracts.NewSystemNoise()
	service := analysis.NewService(cfg, metalsClient, newsClient, builder, reportRepo, priceCache, noise, log)

	// 8. Create report stream hub
	hub := handlers.NewHub(log)
	service.SetPublisher(hub)

	// 9. Create backtest runner
	runner := backtest.NewRunner(metalsClient, fredClient, newsClient, noise, log)

	// 10. Create handlers and router
	analysisHandler := handlers.NewAnalysisHandler(service, log)
	backtestHandler := handlers.NewBacktestHandler(runner, log)
	router := api.NewRouter(analysisHandler, backtestHandler, hub, log)

	// 11. Create server
	server := api.New(cfg, log, router)

	// 12. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server listening on %s\n", server.Addr())
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/analyze/{metal}")
	fmt.Println("  GET  /api/reports/{metal}")
	fmt.Println("  GET  /api/prices")
	fmt.Println("  POST /api/backtest")
	fmt.Println("  WS   /ws/reports")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
