package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/boardreviews/internal/backup"
	"github.com/HerbHall/boardreviews/internal/schema"
	"github.com/HerbHall/boardreviews/internal/seed"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := schema.Apply(cmd.Context(), s); err != nil {
				return err
			}
			a.logger.Info("schema up to date", zap.String("driver", s.Dialect().Name()))
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var dataset string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all rows with an embedded dataset",
		Long: `Seed migrates the schema and then replaces the contents of every table
with one of the embedded datasets, inside a single transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := seed.Load(dataset)
			if err != nil {
				return err
			}

			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := schema.Apply(cmd.Context(), s); err != nil {
				return err
			}
			if err := seed.Apply(cmd.Context(), s, ds); err != nil {
				return fmt.Errorf("seed %s: %w", dataset, err)
			}
			a.logger.Info("database seeded",
				zap.String("dataset", dataset),
				zap.Int("reviews", len(ds.Reviews)),
				zap.Int("comments", len(ds.Comments)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded dataset %q\n", dataset)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "development",
		"dataset to load ("+strings.Join(seed.Names(), ", ")+")")
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write all rows and the config file to a tar.gz archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = fmt.Sprintf("boardreviews-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
			}

			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := backup.Backup(cmd.Context(), s, a.configPath, output); err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output file path (default: boardreviews-backup-{timestamp}.tar.gz)")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace all rows with the contents of a backup archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := schema.Apply(cmd.Context(), s); err != nil {
				return err
			}
			if err := backup.Restore(cmd.Context(), s, input); err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restore complete from %s\n", input)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "backup archive to restore (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
