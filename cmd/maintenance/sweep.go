package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"study-team-api/internal/client"
	"study-team-api/internal/imagegc"
	"study-team-api/internal/repository"
	"study-team-api/internal/storage"
)

var (
	sweepScope  string
	sweepWindow time.Duration
)

var sweepCmd = &cobra.Command{
	Use:   "sweep-images",
	Short: "Delete uploaded images that no post references",
	Long: `sweep-images lists the upload store, collects every image URL referenced by
any post and deletes the files nobody references.

  --scope global   consider every file (default)
  --scope recent   consider only files created within --window`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepScope, "scope", imagegc.ScopeGlobal, "global or recent")
	sweepCmd.Flags().DurationVar(&sweepWindow, "window", time.Hour, "age limit for --scope recent")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepScope != imagegc.ScopeGlobal && sweepScope != imagegc.ScopeRecent {
		return fmt.Errorf("unknown scope %q", sweepScope)
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	var store storage.Store
	if e.cfg.Upload.Backend == "s3" {
		s3Client, err := client.NewS3Client(&e.cfg.S3, nil)
		if err != nil {
			return err
		}
		store = storage.NewS3Store(s3Client, e.cfg.S3.Prefix)
	} else {
		store = storage.NewLocalStore(e.cfg.Upload.Dir)
	}

	collector := imagegc.NewCollector(store, repository.NewPostRepository(e.db), e.cfg.Upload.URLPrefix, nil, e.logger)

	var result *imagegc.Result
	if sweepScope == imagegc.ScopeRecent {
		result, err = collector.CollectOrphansScoped(cmd.Context(), sweepWindow)
	} else {
		result, err = collector.CollectOrphansGlobal(cmd.Context())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, d := range result.Deleted {
		fmt.Fprintf(out, "deleted %s\n", d)
	}
	fmt.Fprintf(out, "scope=%s scanned=%d referenced=%d deleted=%d failed=%d\n",
		result.Scope, result.Scanned, result.Referenced, len(result.Deleted), result.Failed)
	return nil
}
