package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/dxtrack/internal/formatter"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/desertthunder/dxtrack/internal/stats"
	"github.com/urfave/cli/v3"
)

// Dashboard prints entity totals and confirmation progress.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	store, cleanup, err := r.openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	collection, err := loadOrEmpty(store, user)
	if err != nil {
		return err
	}

	table, err := r.loadTable(cmd)
	if err != nil {
		return err
	}

	dash := stats.BuildDashboard(collection, table)

	if cmd.Bool("json") {
		return r.writeJSON(dash, true)
	}

	r.writePlainHeader(fmt.Sprintf("DXCC Progress: %s", user))
	return r.writePlain("%s", formatter.DashboardToText(dash))
}

// Needs prints the per-band need list.
func (r *Runner) Needs(ctx context.Context, cmd *cli.Command) error {
	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	store, cleanup, err := r.openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	collection, err := loadOrEmpty(store, user)
	if err != nil {
		return err
	}

	table, err := r.loadTable(cmd)
	if err != nil {
		return err
	}

	bands := r.trackedBands()
	rows := stats.BuildNeedList(collection, table, bands)
	if !cmd.Bool("all") {
		rows = stats.FilterNeeded(rows)
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, true)
	}

	if len(rows) == 0 {
		r.writePlain("Nothing needed, congratulations\n")
		return nil
	}

	return r.writePlain("%s", formatter.NeedListToText(rows, bands))
}

// Challenge parses an LoTW Challenge CSV export and prints per-band credits.
func (r *Runner) Challenge(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	summary, err := stats.ParseChallenge(f)
	if err != nil {
		return err
	}

	if savePath := cmd.String("save"); savePath != "" {
		if err := stats.SaveChallenge(savePath, summary); err != nil {
			return err
		}
		r.logger.Info("challenge summary saved", "path", savePath)
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("LoTW Challenge Credits")
	r.writePlain("Total slots: %d\n\n", summary.Total)
	for _, band := range summary.Bands() {
		r.writePlain("%-6s %d\n", band, summary.PerBand[band])
	}
	return nil
}
