package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/dxtrack/internal/formatter"
	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/reconcile"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/desertthunder/dxtrack/internal/storage"
	"github.com/urfave/cli/v3"
)

const qsoDateFlag = "2006-01-02"

// QSOAdd logs a single QSO by hand, resolving the DXCC entity from the
// callsign prefix or the --country flag.
func (r *Runner) QSOAdd(ctx context.Context, cmd *cli.Command) error {
	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := cmd.String("date"); raw != "" {
		if date, err = time.Parse(qsoDateFlag, raw); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", shared.ErrInvalidFlag)
		}
	}

	table, err := r.loadTable(cmd)
	if err != nil {
		return err
	}

	qso := models.QSO{
		ID:       shared.GenerateID(),
		Callsign: strings.ToUpper(strings.TrimSpace(cmd.String("call"))),
		Date:     date,
		Band:     strings.ToLower(cmd.String("band")),
		Mode:     strings.ToUpper(cmd.String("mode")),
		Country:  cmd.String("country"),
		Status:   models.ParseQSLStatus(cmd.String("status")),
	}

	if qso.Country != "" {
		if entity, ok := table.ResolveEntity(qso.Country); ok {
			qso.EntityID = entity.ID
			qso.Country = entity.Name
		}
	}
	if qso.EntityID == "" {
		if entity, _, ok := table.EntityForCallsign(qso.Callsign); ok {
			qso.EntityID = entity.ID
			if qso.Country == "" {
				qso.Country = entity.Name
			}
		}
	}

	if err := qso.Validate(); err != nil {
		return err
	}

	store, cleanup, err := r.openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	existing, err := loadOrEmpty(store, user)
	if err != nil {
		return err
	}

	merged, report := reconcile.Merge(existing, []models.QSO{qso})
	if err := store.SaveCollection(user, merged); err != nil {
		return err
	}

	if report.Inserted == 0 {
		r.writePlain("Already logged: %s on %s\n", qso.Callsign, qso.DateString())
		return nil
	}

	if qso.Resolved() {
		r.writePlain("✓ Logged %s (%s) on %s\n", qso.Callsign, qso.Country, qso.DateString())
	} else {
		r.writePlain("✓ Logged %s on %s (no DXCC entity matched)\n", qso.Callsign, qso.DateString())
	}
	return nil
}

// QSOList prints the stored collection, optionally filtered.
func (r *Runner) QSOList(ctx context.Context, cmd *cli.Command) error {
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

	if band := strings.ToLower(cmd.String("band")); band != "" {
		var filtered models.Collection
		for _, qso := range collection {
			if strings.ToLower(qso.Band) == band {
				filtered = append(filtered, qso)
			}
		}
		collection = filtered
	}
	if cmd.Bool("unresolved") {
		collection = collection.Unresolved()
	}

	if cmd.Bool("json") {
		return r.writeJSON(collection, true)
	}

	if len(collection) == 0 {
		r.writePlain("No QSOs logged\n")
		return nil
	}

	return r.writePlain("%s", formatter.CollectionToText(collection))
}

// QSORemove deletes QSOs matching a callsign and date.
func (r *Runner) QSORemove(ctx context.Context, cmd *cli.Command) error {
	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	call := strings.ToUpper(strings.TrimSpace(cmd.String("call")))
	date, err := time.Parse(qsoDateFlag, cmd.String("date"))
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", shared.ErrInvalidFlag)
	}

	store, cleanup, err := r.openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	collection, err := store.LoadCollection(user)
	if err != nil {
		return err
	}

	kept := make(models.Collection, 0, len(collection))
	removed := 0
	for _, qso := range collection {
		if qso.Callsign == call && qso.Date.Format(qsoDateFlag) == date.Format(qsoDateFlag) {
			removed++
			continue
		}
		kept = append(kept, qso)
	}

	if removed == 0 {
		r.writePlain("No matching QSO found\n")
		return nil
	}

	if err := store.SaveCollection(user, kept); err != nil {
		return err
	}

	r.writePlain("✓ Removed %d QSO(s)\n", removed)
	return nil
}

// QSOExport writes the collection to a CSV file.
func (r *Runner) QSOExport(ctx context.Context, cmd *cli.Command) error {
	user, err := r.currentUser(cmd)
	if err != nil {
		return err
	}

	store, cleanup, err := r.openStore(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	collection, err := store.LoadCollection(user)
	if err != nil {
		return err
	}

	base := cmd.String("output")
	if base == "" {
		base = strings.ToLower(user) + "_log"
	}

	path, err := formatter.WriteCSVExport(collection, base)
	if err != nil {
		return err
	}

	r.logger.Info("exported collection", "user", user, "path", path, "qsos", len(collection))
	r.writePlain("✓ Exported %d QSOs to %s\n", len(collection), path)
	return nil
}

// loadOrEmpty treats a missing collection as empty.
func loadOrEmpty(store storage.Store, user string) (models.Collection, error) {
	collection, err := store.LoadCollection(user)
	if errors.Is(err, shared.ErrCollectionNotFound) {
		return models.Collection{}, nil
	}
	return collection, err
}
