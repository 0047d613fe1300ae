package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/shared"
)

const qsoDateLayout = "2006-01-02"

// QSORepository persists per-user QSO rows. All queries are scoped by the
// owning user's callsign; rows never cross users.
type QSORepository struct {
	db *sql.DB
}

// NewQSORepository creates a new [QSORepository] with the given database connection
func NewQSORepository(db *sql.DB) *QSORepository {
	return &QSORepository{db: db}
}

// Create inserts a new QSO row for the owner with generated ID and sequence.
func (r *QSORepository) Create(owner string, qso *models.QSO) error {
	sequence, err := NextSequence(r.db, "qsos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	qso.ID = shared.GenerateID()
	qso.Sequence = sequence
	if qso.CreatedAt.IsZero() {
		qso.CreatedAt = time.Now()
	}
	if qso.UpdatedAt.IsZero() {
		qso.UpdatedAt = qso.CreatedAt
	}

	if err := qso.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return insertQSO(r.db.Exec, strings.ToUpper(owner), qso)
}

// ListByOwner retrieves the owner's collection in insert order, excluding
// soft-deleted rows.
func (r *QSORepository) ListByOwner(owner string) (models.Collection, error) {
	query := `
		SELECT id, sequence, callsign, entity_id, country, qso_date, band, mode,
		       qsl_status, lotw_rcvd, eqsl_rcvd, paper_rcvd, created_at, updated_at
		FROM qsos
		WHERE owner = ? AND deleted_at IS NULL
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query, strings.ToUpper(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to query qsos: %w", err)
	}
	defer rows.Close()

	var collection models.Collection
	for rows.Next() {
		var (
			qso      models.QSO
			entityID sql.NullString
			date     string
			status   string
			lotw     string
			eqsl     string
			paper    string
		)

		err := rows.Scan(&qso.ID, &qso.Sequence, &qso.Callsign, &entityID, &qso.Country, &date,
			&qso.Band, &qso.Mode, &status, &lotw, &eqsl, &paper, &qso.CreatedAt, &qso.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qso: %w", err)
		}

		if entityID.Valid {
			qso.EntityID = entityID.String
		}
		if date != "" {
			if parsed, err := time.Parse(qsoDateLayout, date); err == nil {
				qso.Date = parsed
			}
		}
		qso.Status = models.ParseQSLStatus(status)
		qso.Flags = models.ServiceFlags{
			LoTW:  models.ParseFlag(lotw),
			EQSL:  models.ParseFlag(eqsl),
			Paper: models.ParseFlag(paper),
		}

		collection = append(collection, qso)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return collection, nil
}

// Delete soft-deletes a QSO row by ID, scoped to the owner.
func (r *QSORepository) Delete(owner, id string) error {
	query := `
		UPDATE qsos
		SET deleted_at = ?
		WHERE id = ? AND owner = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id, strings.ToUpper(owner))
	if err != nil {
		return fmt.Errorf("failed to delete qso: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("qso not found or already deleted: %s", id)
	}

	return nil
}

// Update modifies an existing QSO row.
func (r *QSORepository) Update(owner string, qso *models.QSO) error {
	if err := qso.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	qso.UpdatedAt = now

	query := `
		UPDATE qsos
		SET callsign = ?, entity_id = ?, country = ?, qso_date = ?, band = ?, mode = ?,
		    qsl_status = ?, lotw_rcvd = ?, eqsl_rcvd = ?, paper_rcvd = ?, updated_at = ?
		WHERE id = ? AND owner = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		qso.Callsign, nullable(qso.EntityID), qso.Country, qso.DateString(), qso.Band, qso.Mode,
		qso.Status.String(), qso.Flags.LoTW.String(), qso.Flags.EQSL.String(), qso.Flags.Paper.String(),
		now, qso.ID, strings.ToUpper(owner),
	)
	if err != nil {
		return fmt.Errorf("failed to update qso: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("qso not found or already deleted: %s", qso.ID)
	}

	return nil
}

// ReplaceForOwner swaps the owner's entire collection inside one
// transaction. Used by the SQLite storage backend so a merge lands
// all-or-nothing.
func (r *QSORepository) ReplaceForOwner(owner string, collection models.Collection) error {
	owner = strings.ToUpper(owner)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM qsos WHERE owner = ?", owner); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	for i := range collection {
		qso := &collection[i]
		if qso.ID == "" {
			qso.ID = shared.GenerateID()
		}
		qso.Sequence = i + 1
		if qso.CreatedAt.IsZero() {
			qso.CreatedAt = time.Now()
		}
		if qso.UpdatedAt.IsZero() {
			qso.UpdatedAt = qso.CreatedAt
		}
		if err := insertQSO(tx.Exec, owner, qso); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}

	return nil
}

type execFunc func(query string, args ...any) (sql.Result, error)

func insertQSO(exec execFunc, owner string, qso *models.QSO) error {
	query := `
		INSERT INTO qsos (id, sequence, owner, callsign, entity_id, country, qso_date, band, mode,
		                  qsl_status, lotw_rcvd, eqsl_rcvd, paper_rcvd, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := exec(query,
		qso.ID, qso.Sequence, owner, qso.Callsign, nullable(qso.EntityID), qso.Country,
		qso.DateString(), qso.Band, qso.Mode, qso.Status.String(),
		qso.Flags.LoTW.String(), qso.Flags.EQSL.String(), qso.Flags.Paper.String(),
		qso.CreatedAt, qso.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert qso: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
