package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "midas",
	Short: "Midas - 귀금속 시세 분석 · 예측 시스템",
	Long: `Midas Unified CLI

귀금속 시세 수집, 뉴스 감성 분석, 가격 예측, 리포트 생성을
하나의 파이프라인으로 수행합니다.

Usage:
  go run ./cmd/midas [command]

Examples:
  go run ./cmd/midas api
  go run ./cmd/midas analyze XAU
  go run ./cmd/midas backtest --as-of 2026-08-01 --horizon 7
  go run ./cmd/midas scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
