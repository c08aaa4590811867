package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rugscan/pkg/logger"
)

var (
	scanJSON    bool
	scanTimeout time.Duration
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <mint> [mint...]",
	Short: "토큰 리스크 스캔",
	Long: `토큰 민트 주소로 러그 리스크를 계산합니다.

API 서버와 동일한 파이프라인을 사용하므로 DATABASE_URL이 설정되어 있으면
스캔 이력과 통계도 함께 기록됩니다.

Example:
  go run ./cmd/rugscan scan So11111111111111111111111111111111111111112
  go run ./cmd/rugscan scan <mint> --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print the raw report as JSON")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 30*time.Second, "overall scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	a, err := newApp(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer a.Close()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, mint := range args {
		report, err := a.scanner.Scan(ctx, mint)
		if err != nil {
			PrintError(fmt.Sprintf("%s: %v", mint, err))
			return err
		}

		if scanJSON {
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			continue
		}
		PrintReport(report)
	}

	return nil
}
