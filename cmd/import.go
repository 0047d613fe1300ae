package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/desertthunder/dxtrack/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Import parses an ADIF file and merges it into the stored collection.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	store, cleanup, err := r.openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := r.loadTable(cmd)
	if err != nil {
		return err
	}
	engine := r.newEngine(store, table)

	if timeout := r.config.Import.TimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	r.logger.Info("starting import", "file", path, "user", user)
	quiet := cmd.Bool("quiet")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ParseFile, tasks.Reconcile, tasks.SaveCollection:
				if !quiet {
					r.writePlain("• %s\n", update.Message)
				}
			case tasks.MapRecords:
				if !quiet {
					r.writePlain("  %s\n", update.Message)
				}
			}
		}
	}()

	result, err := engine.ImportFile(ctx, user, raw, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Report, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	r.writePlain("Inserted: %d\n", result.Report.Inserted)
	r.writePlain("QSL updated: %d\n", result.Report.UpdatedQSLOnly)
	r.writePlain("Duplicates skipped: %d\n", result.Report.SkippedDuplicate)
	r.writePlain("Unmappable skipped: %d\n", result.Report.SkippedUnmappable)

	if len(result.Unresolved) > 0 {
		r.writePlain("\n%d QSOs have no DXCC entity:\n", len(result.Unresolved))
		for _, qso := range result.Unresolved {
			r.writePlain("  - %s on %s\n", qso.Callsign, qso.DateString())
		}
	}

	return nil
}
