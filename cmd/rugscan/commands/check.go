package commands

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rugscan/pkg/database"
	"github.com/wonny/rugscan/pkg/redis"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "PostgreSQL / Redis 연결 테스트",
	Long: `설정된 백엔드 연결을 테스트하고 풀 통계를 표시합니다.

이 명령어는:
- config에서 DATABASE_URL, REDIS_* 로드
- 데이터베이스 연결 및 Health Check
- Redis Ping
- Connection Pool 통계 표시

설정되지 않은 백엔드는 건너뜁니다.

Example:
  go run ./cmd/rugscan check
  go run ./cmd/rugscan check --env production`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("=== RugScan Backend Check ===")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}
	PrintSuccess(fmt.Sprintf("Config loaded (ENV: %s)", cfg.Env))

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	// Database
	PrintHeader("PostgreSQL")
	if !cfg.Database.Enabled() {
		PrintInfo("DATABASE_URL not set, skipped")
	} else {
		PrintKeyValue("URL", maskURL(cfg.Database.URL), 8)

		db, err := database.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("❌ Failed to connect to database: %w", err)
		}
		defer db.Close()

		status, err := db.HealthCheck(ctx)
		if err != nil {
			return fmt.Errorf("❌ Health check failed: %w", err)
		}
		PrintSuccess(fmt.Sprintf("Healthy in %v", status.ResponseTime))

		PrintKeyValue("Max", fmt.Sprint(status.Stats.MaxConns), 8)
		PrintKeyValue("Total", fmt.Sprint(status.Stats.TotalConns), 8)
		PrintKeyValue("Acquired", fmt.Sprint(status.Stats.AcquiredConns), 8)
		PrintKeyValue("Idle", fmt.Sprint(status.Stats.IdleConns), 8)
	}

	// Redis
	PrintHeader("Redis")
	if !cfg.Redis.Enabled {
		PrintInfo("REDIS_ENABLED=false, skipped")
	} else {
		PrintKeyValue("Addr", cfg.Redis.Host+":"+cfg.Redis.Port, 8)

		start := time.Now()
		rc, err := redis.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("❌ %w", err)
		}
		defer rc.Close()
		PrintSuccess(fmt.Sprintf("Ping in %v", time.Since(start).Round(time.Microsecond)))
	}

	PrintDoubleSeparator()
	PrintSuccess("All checks passed")
	return nil
}

// maskURL hides the password of a connection URL for display
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
