package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/repositories"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/urfave/cli/v3"
)

// DXCCStats prints counts from the entity reference table.
func (r *Runner) DXCCStats(ctx context.Context, cmd *cli.Command) error {
	table, err := r.loadTable(cmd)
	if err != nil {
		return err
	}

	active, total, prefixes := table.Stats()
	r.writePlain("Active entities:  %d\n", active)
	r.writePlain("Deleted entities: %d\n", total-active)
	r.writePlain("Prefix rules:     %d\n", prefixes)
	return nil
}

// DXCCLookup resolves a callsign or country name against the entity table.
func (r *Runner) DXCCLookup(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	table, err := r.loadTable(cmd)
	if err != nil {
		return err
	}

	if entity, ok := table.ResolveEntity(query); ok {
		r.writePlain("%s (entity %s)\n", entity.Name, entity.ID)
		if entity.Deleted {
			r.writePlain("Deleted entity, does not count toward awards\n")
		}
		return nil
	}

	if entity, prefix, ok := table.EntityForCallsign(query); ok {
		r.writePlain("%s (entity %s, matched prefix %s)\n", entity.Name, entity.ID, prefix)
		return nil
	}

	return fmt.Errorf("%w: %s", shared.ErrEntityNotFound, query)
}

// DXCCReload reseeds the database entity tables from the bundled dataset.
// Requires an admin account.
func (r *Runner) DXCCReload(ctx context.Context, cmd *cli.Command) error {
	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	account, err := repositories.NewUserRepository(db).GetByCallsign(user)
	if err != nil {
		return err
	}
	if !account.IsAdmin {
		return fmt.Errorf("%w: %s is not an admin", shared.ErrInvalidCredentials, user)
	}

	entities, prefixes, err := dxcc.Seed(db)
	if err != nil {
		return err
	}

	r.logger.Info("entity tables reseeded", "by", user, "entities", entities, "prefixes", prefixes)
	r.writePlain("✓ Reloaded %d entities (%d prefixes)\n", entities, prefixes)
	return nil
}
