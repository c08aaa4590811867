package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/rugscan/internal/api"
	"github.com/wonny/rugscan/internal/api/handlers"
	"github.com/wonny/rugscan/internal/scheduler"
	"github.com/wonny/rugscan/internal/scheduler/jobs"
	"github.com/wonny/rugscan/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 토큰 스캔 엔드포인트 제공
- 사용 통계 엔드포인트 제공

Endpoints:
  GET  /health                    - Health check
  GET  /metrics                   - Prometheus metrics (METRICS_ENABLED)
  GET  /api/scan/{mint}           - 토큰 리스크 스캔
  GET  /api/scan/{mint}/history   - 스캔 이력 (DATABASE_URL 필요)
  GET  /api/stats                 - 사용 통계 조회
  POST /api/stats                 - 사용 통계 증가

Example:
  go run ./cmd/rugscan api
  go run ./cmd/rugscan api --env production`,
	RunE: runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	log.Info("Starting RugScan API server")

	// 3. Wire backends and scan pipeline
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	a, err := newApp(startCtx, cfg, log, true)
	cancelStart()
	if err != nil {
		return err
	}
	defer a.Close()

	// 4. Create per-client limiters
	limiters := api.NewLimiters(cfg.HTTP)

	// 5. Create handlers
	h := api.Handlers{
		Scan:    handlers.NewScanHandler(a.scanner, log),
		Stats:   handlers.NewStatsHandler(a.stats, a.metrics, log),
		Health:  handlers.NewHealthHandler(a.healthChecks(), a.provider.State),
		Metrics: a.metrics,
	}

	// 6. Create router and server
	router := api.NewRouter(h, limiters, cfg.HTTP, log)
	server := api.New(cfg, log, router)

	// 7. Background maintenance
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewLimiterSweepJob(log, limiters.Scan, limiters.Stats)); err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	// 8. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	if a.metrics != nil {
		fmt.Println("  GET  /metrics")
	}
	fmt.Println("  GET  /api/scan/{mint}")
	fmt.Println("  GET  /api/scan/{mint}/history")
	fmt.Println("  GET  /api/stats")
	fmt.Println("  POST /api/stats")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

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
