// package tasks implements long-running logbook operations.
//
// The core abstraction is ImportEngine, which orchestrates ADIF imports:
// parse, map, reconcile against the stored collection, then persist.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dxtrack/internal/adif"
	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/reconcile"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/desertthunder/dxtrack/internal/storage"
)

// ImportResult contains all data from a completed import.
type ImportResult struct {
	Report     models.MergeReport // Reconciliation counts
	Collection models.Collection  // Collection after the merge
	Unresolved []models.QSO       // Inserted QSOs with no entity mapping
}

// ImportEngine runs ADIF imports against a backing store.
type ImportEngine struct {
	store      storage.Store
	mapper     *adif.Mapper
	logger     *log.Logger
	maxRecords int
}

// NewImportEngine creates an engine over the given store and mapper.
// maxRecords caps how many ADIF records a single file may carry;
// zero or negative disables the cap.
func NewImportEngine(store storage.Store, mapper *adif.Mapper, logger *log.Logger, maxRecords int) *ImportEngine {
	return &ImportEngine{
		store:      store,
		mapper:     mapper,
		logger:     logger,
		maxRecords: maxRecords,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ImportFile parses raw ADIF bytes and merges the resulting QSOs into the
// user's stored collection. The store is only written after reconciliation
// succeeds, so a failed import leaves the collection untouched.
func (e *ImportEngine) ImportFile(ctx context.Context, userID string, raw []byte, progress chan<- ProgressUpdate) (*ImportResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: import engine has no store", shared.ErrInvalidConfig)
	}

	e.sendProgress(progress, parseUpdate(1, 1))

	records, err := adif.Parse(raw)
	if err != nil {
		return nil, err
	}
	if e.maxRecords > 0 && len(records) > e.maxRecords {
		return nil, fmt.Errorf("%w: file has %d records, limit is %d", shared.ErrImportAborted, len(records), e.maxRecords)
	}

	total := len(records)
	result := &ImportResult{}
	candidates := make([]models.QSO, 0, total)

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrImportAborted, err)
		}

		qso, err := e.mapper.MapRecord(rec)
		if err != nil {
			result.Report.SkippedUnmappable++
			e.logger.Warn("skipping unmappable record", "index", i, "error", err)
			continue
		}

		candidates = append(candidates, *qso)
		e.sendProgress(progress, mapUpdate(i+1, total, qso))
	}

	e.sendProgress(progress, loadUpdate(1, 1, userID))

	existing, err := e.store.LoadCollection(userID)
	if err != nil {
		if !errors.Is(err, shared.ErrCollectionNotFound) {
			return nil, err
		}
		existing = models.Collection{}
	}

	e.sendProgress(progress, reconcileUpdate(1, 1, len(candidates)))

	merged, report := reconcile.Merge(existing, candidates)
	report.SkippedUnmappable = result.Report.SkippedUnmappable
	result.Report = report
	result.Collection = merged
	result.Unresolved = merged.Unresolved()

	e.sendProgress(progress, saveUpdate(1, 1, len(merged)))

	if err := e.store.SaveCollection(userID, merged); err != nil {
		return nil, err
	}

	e.logger.Info("import complete",
		"user", userID,
		"inserted", report.Inserted,
		"updated", report.UpdatedQSLOnly,
		"duplicates", report.SkippedDuplicate,
		"unmappable", report.SkippedUnmappable)

	e.sendProgress(progress, doneUpdate(&result.Report))
	return result, nil
}
