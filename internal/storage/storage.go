// package storage abstracts the per-user collection store behind a small
// interface so the import core never assumes a concrete file format.
//
// Two backends exist: an Excel workbook per user (the operator-facing
// spreadsheet) and the application's SQLite database. Load and Save are
// scoped whole-collection operations; nothing in the core interleaves
// storage access with reconciliation.
package storage

import (
	"github.com/desertthunder/dxtrack/internal/models"
)

// Store persists one collection per user, keyed by the owner's callsign.
type Store interface {
	// LoadCollection reads the user's collection. A user with no saved
	// collection yet returns shared.ErrCollectionNotFound.
	LoadCollection(userID string) (models.Collection, error)

	// SaveCollection writes the user's entire collection, replacing any
	// previous contents.
	SaveCollection(userID string, collection models.Collection) error
}
