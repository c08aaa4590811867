package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rugscan/internal/stats"
	"github.com/wonny/rugscan/pkg/logger"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [visit|scan|share|moon]",
	Short: "사용 통계 조회/증가",
	Long: `사용 통계 카운터를 표시합니다.
인자로 종류를 주면 해당 카운터를 1 증가시킨 뒤 표시합니다.

저장소 우선순위: PostgreSQL > Redis > 메모리(프로세스 종료 시 소멸)

Example:
  go run ./cmd/rugscan stats
  go run ./cmd/rugscan stats share`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	a, err := newApp(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer a.Close()

	var counters stats.Counters
	if len(args) == 1 {
		kind, err := stats.ParseKind(args[0])
		if err != nil {
			return err
		}
		if counters, err = a.stats.Increment(ctx, kind); err != nil {
			return fmt.Errorf("increment %s: %w", kind, err)
		}
	} else if counters, err = a.stats.Get(ctx); err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	PrintHeader("Usage Stats")
	PrintKeyValue("Visits", strconv.FormatInt(counters.Visits, 10), 6)
	PrintKeyValue("Scans", strconv.FormatInt(counters.Scans, 10), 6)
	PrintKeyValue("Shares", strconv.FormatInt(counters.Shares, 10), 6)
	PrintKeyValue("Moon", strconv.FormatInt(counters.Moon, 10), 6)
	PrintDoubleSeparator()

	return nil
}
