package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/external/metals"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

// pricesCmd represents the prices command
var pricesCmd = &cobra.Command{
	Use:   "prices [symbols...]",
	Short: "현재 시세 조회",
	Long: `지정한 금속들의 현재 USD 시세를 조회합니다.

심볼을 생략하면 주요 4종(XAU, XAG, XPT, XPD)을 조회합니다.

Example:
  go run ./cmd/midas prices
  go run ./cmd/midas prices XAU XAG COPPER`,
	RunE: runPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}

func runPrices(cmd *cobra.Command, args []string) error {
	symbols := []string{"XAU", "XAG", "XPT", "XPD"}
	if len(args) > 0 {
		symbols = symbols[:0]
		for _, arg := range args {
			symbol := strings.ToUpper(arg)
			if !contracts.IsSupportedMetal(symbol) {
				return fmt.Errorf("unsupported metal: %s", symbol)
			}
			symbols = append(symbols, symbol)
		}
	}

	// 1. Load config and logger
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	// 2. Fetch prices
	httpClient := httputil.New(log)
	metalsClient := metals.NewClient(httpClient, cfg.MetalsAPI, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prices, err := metalsClient.LatestPrices(ctx, symbols)
	if err != nil {
		PrintError(fmt.Sprintf("Price fetch failed: %v", err))
		return err
	}

	// 3. Print table (심볼 순 정렬)
	fetched := make([]string, 0, len(prices))
	for symbol := range prices {
		fetched = append(fetched, symbol)
	}
	sort.Strings(fetched)

	fmt.Println()
	widths := []int{10, 14, 12}
	PrintTableHeader([]string{"Symbol", "Name", "Price (USD)"}, widths)
	for _, symbol := range fetched {
		PrintTableRow([]string{
			symbol,
			contracts.MetalName(symbol),
			fmt.Sprintf("%.2f", prices[symbol]),
		}, widths)
	}
	fmt.Println()

	if len(fetched) < len(symbols) {
		PrintWarning(fmt.Sprintf("%d of %d symbols unavailable", len(symbols)-len(fetched), len(symbols)))
	}

	return nil
}
