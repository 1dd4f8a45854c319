package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/boardreviews/internal/config"
	"github.com/HerbHall/boardreviews/internal/logging"
	"github.com/HerbHall/boardreviews/internal/store"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "boardreviews",
		Short: "Board game review API server",
		Long: `BoardReviews serves a JSON API of board game reviews, categories,
users and comments backed by SQLite or PostgreSQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./boardreviews.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		if err := cfg.Viper().BindPFlag("log.level", f); err != nil {
			return fmt.Errorf("bind log-level: %w", err)
		}
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:      cfg.GetString("log.level"),
		Format:     cfg.GetString("log.format"),
		File:       cfg.GetString("log.file"),
		MaxSizeMB:  cfg.GetInt("log.max_size_mb"),
		MaxBackups: cfg.GetInt("log.max_backups"),
		MaxAgeDays: cfg.GetInt("log.max_age_days"),
		Compress:   cfg.GetBool("log.compress"),
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// openStore opens the configured database backend.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, store.Options{
		Driver: a.cfg.GetString("database.driver"),
		Path:   a.cfg.GetString("database.path"),
		URL:    a.cfg.GetString("database.url"),
		Pool: store.PoolOptions{
			MaxOpenConns:    a.cfg.GetInt("database.max_open_conns"),
			MaxIdleConns:    a.cfg.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: a.cfg.GetDuration("database.conn_max_lifetime"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.logger.Debug("database opened", zap.String("driver", s.Dialect().Name()))
	return s, nil
}
