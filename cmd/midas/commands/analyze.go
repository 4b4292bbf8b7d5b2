package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/midas/internal/analysis"
	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/external/metals"
	"github.com/wonny/midas/internal/external/worldnews"
	"github.com/wonny/midas/internal/report"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/database"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
	"github.com/wonny/midas/pkg/redis"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [metal]",
	Short: "일일 분석 리포트 생성",
	Long: `지정한 금속에 대해 전체 분석 파이프라인을 한 번 실행합니다.

이 명령어는:
- 현재 시세 조회
- 최근 뉴스 수집 및 감성 분석
- 가격 예측 및 리포트 생성
- 생성된 리포트를 DB에 저장

Example:
  go run ./cmd/midas analyze XAU
  go run ./cmd/midas analyze silver`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	metal := strings.ToUpper(args[0])

	fmt.Println("=== Midas Analysis ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// 4. Connect to Redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	priceCache := redis.NewCache(redisClient, "midas")

	// 5. Wire the analysis service
	httpClient := httputil.New(log)
	metalsClient := metals.NewClient(httpClient, cfg.MetalsAPI, log)
	newsClient := worldnews.NewClient(httpClient, cfg.WorldNews, log)
	reportRepo := report.NewRepository(db.Pool)
	builder := report.NewBuilder(log.Zerolog())
	service := analysis.NewService(cfg, metalsClient, newsClient, builder, reportRepo,
		priceCache, contracts.NewSystemNoise(), log)

	// 6. Run analysis
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	rep, err := service.Analyze(ctx, metal)
	if err != nil {
		PrintError(fmt.Sprintf("Analysis failed: %v", err))
		return err
	}

	printReportSummary(rep, time.Since(start))
	return nil
}

func printReportSummary(rep *contracts.Report, elapsed time.Duration) {
	PrintHeader(fmt.Sprintf("%s (%s) Analysis Report #%d", rep.MetalName, rep.Metal, rep.ID))

	PrintKeyValue("Current Price", fmt.Sprintf("$%.2f", rep.CurrentAnalysis.Price), 18)
	PrintKeyValue("Predicted Price", fmt.Sprintf("$%.2f", rep.Prediction.PredictedPrice), 18)
	PrintKeyValue("Expected Change", fmt.Sprintf("%+.2f%%", rep.Prediction.PriceChangePercent), 18)
	PrintKeyValue("Trend", string(rep.Prediction.Trend), 18)
	PrintKeyValue("Confidence", fmt.Sprintf("%.1f%%", rep.Prediction.Confidence*100), 18)
	PrintKeyValue("Risk Level", string(rep.RiskAssessment.RiskLevel), 18)
	PrintKeyValue("News Analyzed", fmt.Sprintf("%d articles", rep.NewsSentiment.ArticlesAnalyzed), 18)

	PrintSeparator()
	fmt.Println("  Recommendations:")
	PrintNumberedList(rep.Recommendations)

	PrintSeparator()
	PrintSuccess(fmt.Sprintf("Report #%d saved in %.2fs", rep.ID, elapsed.Seconds()))
}
