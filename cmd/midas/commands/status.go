package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/database"
	"github.com/wonny/midas/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "인프라 연결 상태 확인",
	Long: `데이터베이스와 Redis 연결 상태를 확인합니다.

표시 정보:
- PostgreSQL 연결 및 응답 시간
- 커넥션 풀 상태
- Redis 연결 여부

Example:
  go run ./cmd/midas status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Midas Infrastructure Status ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 2. Database
	PrintHeader("PostgreSQL")
	db, err := database.New(cfg)
	if err != nil {
		PrintError(fmt.Sprintf("Connection failed: %v", err))
	} else {
		defer db.Close()

		health, err := db.HealthCheck(ctx)
		if err != nil {
			PrintError(fmt.Sprintf("Health check failed: %v", err))
		} else {
			PrintKeyValue("Response Time", health.ResponseTime.String(), 14)
			PrintKeyValue("Total Conns", fmt.Sprintf("%d / %d",
				health.Stats.TotalConns, health.Stats.MaxConns), 14)
			PrintKeyValue("Idle Conns", fmt.Sprintf("%d", health.Stats.IdleConns), 14)
			PrintSuccess("Database healthy")
		}
	}

	// 3. Redis
	PrintHeader("Redis")
	redisClient, err := redis.New(cfg)
	if err != nil {
		PrintError(fmt.Sprintf("Connection failed: %v", err))
	} else {
		defer redisClient.Close()

		if !redisClient.Enabled() {
			PrintInfo("Redis disabled (REDIS_ENABLED=false), price cache inactive")
		} else {
			PrintSuccess("Redis healthy")
		}
	}

	fmt.Println()
	return nil
}
