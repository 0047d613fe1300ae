package tasks

import (
	"fmt"

	"github.com/desertthunder/dxtrack/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParseFile Phase = iota
	MapRecords
	LoadCollection
	Reconcile
	SaveCollection
	Done
)

func (p Phase) String() string {
	switch p {
	case ParseFile:
		return "parse_file"
	case MapRecords:
		return "map_records"
	case LoadCollection:
		return "load_collection"
	case Reconcile:
		return "reconcile"
	case SaveCollection:
		return "save_collection"
	case Done:
		return "done"
	default:
		return ""
	}
}

func parseUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseFile,
		Step:    step,
		Total:   total,
		Message: "Parsing ADIF file...",
	}
}

func mapUpdate(step, total int, qso *models.QSO) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MapRecords,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s on %s", step, total, qso.Callsign, qso.Band),
		Data:    qso,
	}
}

func loadUpdate(step, total int, userID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadCollection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loading collection for %s...", userID),
	}
}

func reconcileUpdate(step, total, candidates int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Reconciling %d candidate QSOs...", candidates),
	}
}

func saveUpdate(step, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveCollection,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Saving %d QSOs...", size),
	}
}

func doneUpdate(report *models.MergeReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Import complete: %d inserted, %d updated, %d duplicates, %d unmappable", report.Inserted, report.UpdatedQSLOnly, report.SkippedDuplicate, report.SkippedUnmappable),
		Data:    report,
	}
}
