package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/rugscan/pkg/config"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rugscan",
	Short: "RugScan - 토큰 러그 리스크 스코어링 엔진",
	Long: `RugScan Unified CLI

DexScreener 시장 스냅샷 하나로 토큰의 러그 리스크를 0-100 점수로 평가합니다.
9개 서브 시그널 가중 평균 + 시장 무결성 기반 감쇠.

Usage:
  go run ./cmd/rugscan [command]

Examples:
  go run ./cmd/rugscan api
  go run ./cmd/rugscan scan <mint>
  go run ./cmd/rugscan stats
  go run ./cmd/rugscan scheduler start
  go run ./cmd/rugscan check`,
	SilenceUsage: true,
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

// loadConfig applies the global flags on top of the environment
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("env") {
		switch env {
		case "development", "staging", "production":
			cfg.Env = env
		default:
			return nil, fmt.Errorf("--env must be one of: development, staging, production")
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
