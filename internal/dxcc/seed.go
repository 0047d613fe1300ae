package dxcc

import (
	"database/sql"
	"fmt"
	"strings"
)

// Seed replaces the dxcc_entities and dxcc_prefixes tables with the embedded
// dataset. Run once during setup; rerunning refreshes the tables in place.
func Seed(db *sql.DB) (int, int, error) {
	entities, err := LoadEmbedded()
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM dxcc_prefixes"); err != nil {
		return 0, 0, fmt.Errorf("failed to clear prefixes: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM dxcc_entities"); err != nil {
		return 0, 0, fmt.Errorf("failed to clear entities: %w", err)
	}

	prefixCount := 0
	for _, e := range entities {
		active := 1
		if e.Deleted {
			active = 0
		}
		if _, err := tx.Exec(
			"INSERT INTO dxcc_entities (entity_id, name, active) VALUES (?, ?, ?)",
			e.ID, e.Name, active,
		); err != nil {
			return 0, 0, fmt.Errorf("failed to insert entity %s: %w", e.ID, err)
		}
		for _, p := range e.Prefixes {
			if _, err := tx.Exec(
				"INSERT INTO dxcc_prefixes (prefix, entity_id) VALUES (?, ?)",
				p, e.ID,
			); err != nil {
				return 0, 0, fmt.Errorf("failed to insert prefix %s: %w", p, err)
			}
			prefixCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return len(entities), prefixCount, nil
}

// Load builds the runtime Table. When the database holds seeded reference
// tables those win (they may have been refreshed by an admin); otherwise the
// embedded dataset is used directly. Aliases always come from the embedded
// dataset since the tables do not carry them.
func Load(db *sql.DB) (*Table, error) {
	embedded, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}

	if db == nil {
		return NewTable(embedded), nil
	}

	fromDB, err := readEntities(db)
	if err != nil || len(fromDB) == 0 {
		return NewTable(embedded), nil
	}

	aliases := make(map[string][]string, len(embedded))
	for _, e := range embedded {
		aliases[e.ID] = e.Aliases
	}
	for i := range fromDB {
		fromDB[i].Aliases = aliases[fromDB[i].ID]
	}

	return NewTable(fromDB), nil
}

// readEntities loads entities and their prefixes from the seeded tables.
func readEntities(db *sql.DB) ([]Entity, error) {
	rows, err := db.Query("SELECT entity_id, name, active FROM dxcc_entities")
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*Entity)
	var order []string
	for rows.Next() {
		var (
			id     string
			name   string
			active int
		)
		if err := rows.Scan(&id, &name, &active); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		byID[id] = &Entity{ID: id, Name: name, Deleted: active == 0}
		order = append(order, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	prows, err := db.Query("SELECT prefix, entity_id FROM dxcc_prefixes")
	if err != nil {
		return nil, fmt.Errorf("failed to query prefixes: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var prefix, id string
		if err := prows.Scan(&prefix, &id); err != nil {
			return nil, fmt.Errorf("failed to scan prefix: %w", err)
		}
		if e, ok := byID[id]; ok {
			e.Prefixes = append(e.Prefixes, strings.ToUpper(prefix))
		}
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	entities := make([]Entity, 0, len(order))
	for _, id := range order {
		entities = append(entities, *byID[id])
	}
	return entities, nil
}
