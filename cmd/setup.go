package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the config file and database, runs migrations, and
// seeds the DXCC reference tables.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.openDatabase()
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info("seeding DXCC entity tables")
	entities, prefixes, err := dxcc.Seed(db)
	if err != nil {
		return fmt.Errorf("failed to seed entity tables: %w", err)
	}

	if err := os.MkdirAll(config.Data.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Setup complete\n")
	r.writePlain("Database: %s\n", config.Database.Path)
	r.writePlain("Data directory: %s\n", config.Data.Dir)
	r.writePlain("DXCC entities seeded: %d (%d prefixes)\n", entities, prefixes)
	return nil
}
