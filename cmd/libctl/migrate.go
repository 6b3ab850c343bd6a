package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "執行資料庫 migration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "套用所有尚未執行的 migration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			url, err := opts.dbURL()
			if err != nil {
				return err
			}
			if err := migrateUp(url); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	var force bool
	down := &cobra.Command{
		Use:   "down",
		Short: "回滾全部 migration (會清空資料)",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("refusing to drop all tables without --force")
			}
			url, err := opts.dbURL()
			if err != nil {
				return err
			}
			if err := migrateDown(url); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "migrations rolled back")
			return nil
		},
	}
	down.Flags().BoolVar(&force, "force", false, "確認要回滾")
	cmd.AddCommand(down)

	return cmd
}
