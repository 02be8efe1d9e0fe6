// Command maintenance runs one-off operational tasks against the study database:
// orphan image sweeps, counter repair, notification pruning and schema migration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"study-team-api/internal/config"
	"study-team-api/internal/database"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Operational tasks for the study team API",
	Long: `maintenance runs one-off tasks that the API otherwise performs on a schedule
or never at all: sweeping orphaned upload images, rebuilding like and upvote
counters, pruning old read notifications and applying schema migrations.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// env is what every command needs: configuration, a logger and a live database
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zapcore.DebugLevel
	}
	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(level)
	logConfig.Encoding = "console"
	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	_ = database.Close(e.db)
	_ = e.logger.Sync()
}
