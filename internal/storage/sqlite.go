package storage

import (
	"fmt"

	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/repositories"
	"github.com/desertthunder/dxtrack/internal/shared"
)

// SQLiteStore keeps collections in the qsos table, delegating row access
// to the QSO repository.
type SQLiteStore struct {
	repo *repositories.QSORepository
}

// NewSQLiteStore creates a store backed by the given repository.
func NewSQLiteStore(repo *repositories.QSORepository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

// LoadCollection fetches every non-deleted QSO the user owns.
// A user with no rows yet maps to ErrCollectionNotFound so callers can
// distinguish "never imported" from an empty result after filtering.
func (s *SQLiteStore) LoadCollection(userID string) (models.Collection, error) {
	collection, err := s.repo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	if len(collection) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrCollectionNotFound, userID)
	}
	return collection, nil
}

// SaveCollection replaces the user's rows with the given collection in a
// single transaction.
func (s *SQLiteStore) SaveCollection(userID string, collection models.Collection) error {
	return s.repo.ReplaceForOwner(userID, collection)
}
