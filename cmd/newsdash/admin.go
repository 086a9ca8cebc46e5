package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCacheCmd = &cobra.Command{
	Use:   "cleanup-cache",
	Short: "Delete expired enriched articles from the article cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := buildStore(AppConfig)
		if err != nil {
			return err
		}
		deleted, err := st.CleanupOldCache()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired article(s).\n", deleted)
		return nil
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user <username> <password>",
	Short: "Register a dashboard user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := buildStore(AppConfig)
		if err != nil {
			return err
		}
		id, err := st.CreateUser(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s with id %d.\n", args[0], id)
		return nil
	},
}
