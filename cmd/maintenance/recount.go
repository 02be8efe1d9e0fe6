package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"study-team-api/internal/repository"
)

var recountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Rebuild team upvote and post like counters from their rows",
	RunE:  runRecount,
}

func init() {
	rootCmd.AddCommand(recountCmd)
}

func runRecount(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	teams, err := repository.NewTeamRepository(e.db).RecountUpvotes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to recount upvotes: %w", err)
	}
	posts, err := repository.NewPostRepository(e.db).RecountLikes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to recount likes: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "teams updated=%d posts updated=%d\n", teams, posts)
	return nil
}
