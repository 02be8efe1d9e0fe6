package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"study-team-api/internal/database"
	"study-team-api/internal/repository"
	"study-team-api/internal/service"
)

var retentionDays int

var pruneCmd = &cobra.Command{
	Use:   "prune-notifications",
	Short: "Delete read notifications older than the retention period",
	RunE:  runPrune,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		return database.SafeAutoMigrate(e.db, e.logger)
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(migrateCmd)
	pruneCmd.Flags().IntVar(&retentionDays, "days", 0, "retention in days (default: jobs.notification_retention_days)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	days := retentionDays
	if days <= 0 {
		days = e.cfg.Jobs.NotificationRetentionDays
	}
	if days <= 0 {
		return fmt.Errorf("retention must be positive, got %d", days)
	}

	// no cache or pusher: pruning only touches read rows, which never count as unread
	notifications := service.NewNotificationService(repository.NewNotificationRepository(e.db), nil, 0, nil, nil, e.logger)
	deleted, err := notifications.PruneRead(cmd.Context(), days)
	if err != nil {
		return fmt.Errorf("failed to prune notifications: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted=%d retention_days=%d\n", deleted, days)
	return nil
}
