package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/midas/internal/backtest"
	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/external/fred"
	"github.com/wonny/midas/internal/external/metals"
	"github.com/wonny/midas/internal/external/worldnews"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "백테스트 실행",
	Long: `기준일 시점의 뉴스만으로 예측을 수행하고 실제 시세와 비교합니다.

백테스트는 다음을 검증합니다:
- 예측 가격과 실제 가격의 차이
- 추세 방향 적중 여부
- 기준일 시점 뉴스 감성

Flags:
  --metal     금속 심볼 (기본: XAU)
  --as-of     기준 날짜 (YYYY-MM-DD, 필수)
  --horizon   예측 기간 (일, 기본: 7일)

Example:
  go run ./cmd/midas backtest --as-of 2026-08-01
  go run ./cmd/midas backtest --metal XAG --as-of 2026-08-01 --horizon 14`,
	RunE: runBacktestCmd,
}

var (
	backtestMetal   string
	backtestAsOf    string
	backtestHorizon int
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	// Flags
	backtestCmd.Flags().StringVar(&backtestMetal, "metal", "XAU", "금속 심볼")
	backtestCmd.Flags().StringVar(&backtestAsOf, "as-of", "", "기준 날짜 (YYYY-MM-DD, 필수)")
	backtestCmd.Flags().IntVar(&backtestHorizon, "horizon", 7, "예측 기간 (일)")

	backtestCmd.MarkFlagRequired("as-of")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Midas Backtest ===")

	metal := strings.ToUpper(backtestMetal)
	if !contracts.IsSupportedMetal(metal) {
		return fmt.Errorf("unsupported metal: %s", metal)
	}

	asOf, err := time.Parse("2006-01-02", backtestAsOf)
	if err != nil {
		return fmt.Errorf("invalid as-of date: %w", err)
	}

	if backtestHorizon <= 0 {
		backtestHorizon = 7
	}

	// 1. Load config and logger
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	// 2. Wire the backtest runner (DB 불필요)
	httpClient := httputil.New(log)
	metalsClient := metals.NewClient(httpClient, cfg.MetalsAPI, log)
	newsClient := worldnews.NewClient(httpClient, cfg.WorldNews, log)
	fredClient := fred.NewClient(httpClient, cfg.FRED, log)
	runner := backtest.NewRunner(metalsClient, fredClient, newsClient, contracts.NewSystemNoise(), log)

	// 3. Run
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := runner.Run(ctx, metal, asOf, backtestHorizon)
	if err != nil {
		PrintError(fmt.Sprintf("Backtest failed: %v", err))
		return err
	}

	printBacktestResult(metal, result)
	return nil
}

func printBacktestResult(metal string, result *backtest.Result) {
	PrintHeader(fmt.Sprintf("%s Backtest: %s → %s (%d days)",
		contracts.MetalName(metal), result.AsOfDate, result.TargetDate, result.HorizonDays))

	PrintKeyValue("Historical Price", fmt.Sprintf("$%.2f", result.HistoricalPrice), 18)
	PrintKeyValue("Predicted Price", fmt.Sprintf("$%.2f", result.PredictedPrice), 18)
	PrintKeyValue("Predicted Change", fmt.Sprintf("%+.2f%%", result.PredictedChangePercent), 18)
	PrintKeyValue("Trend", string(result.Trend), 18)
	PrintKeyValue("News Sentiment", fmt.Sprintf("%.3f (%d articles)",
		result.NewsSentiment.SentimentScore, result.NewsSentiment.ArticlesAnalyzed), 18)

	if result.RealizedChangePercent == nil {
		PrintWarning("Target date price unavailable, realized outcome skipped")
		return
	}

	PrintKeyValue("Actual Price", fmt.Sprintf("$%.2f", result.ActualFuturePrice), 18)
	PrintKeyValue("Realized Change", fmt.Sprintf("%+.2f%%", *result.RealizedChangePercent), 18)

	PrintSeparator()
	if result.DirectionMatch != nil && *result.DirectionMatch {
		PrintSuccess("Direction match")
	} else {
		PrintError("Direction miss")
	}
}
