// package stats derives award-progress summaries from a QSO collection.
//
// All functions here are pure readers over models.Collection and the
// DXCC table; nothing in this package writes to storage.
package stats

import (
	"sort"
	"strings"

	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/models"
)

// Dashboard summarises entity-level progress toward DXCC.
type Dashboard struct {
	TotalQSOs       int `json:"total_qsos"`
	WorkedEntities  int `json:"worked_entities"`
	Confirmed       int `json:"confirmed_entities"`
	Requested       int `json:"requested_entities"`
	Needed          int `json:"needed_entities"`
	ActiveEntities  int `json:"active_entities"`
	UnresolvedQSOs  int `json:"unresolved_qsos"`
	DeletedEntities int `json:"deleted_worked"`
}

// BuildDashboard rolls the collection up to one status per entity, taking
// the best status across all of that entity's QSOs.
func BuildDashboard(collection models.Collection, table *dxcc.Table) Dashboard {
	best := bestByEntity(collection)

	dash := Dashboard{
		TotalQSOs:      len(collection),
		ActiveEntities: table.ActiveCount(),
	}

	for id, status := range best {
		entity, ok := table.Entity(id)
		if ok && entity.Deleted {
			dash.DeletedEntities++
			continue
		}
		dash.WorkedEntities++
		switch status {
		case models.StatusConfirmed:
			dash.Confirmed++
		case models.StatusRequested:
			dash.Requested++
		}
	}

	dash.Needed = dash.ActiveEntities - dash.Confirmed
	if dash.Needed < 0 {
		dash.Needed = 0
	}
	dash.UnresolvedQSOs = len(collection.Unresolved())

	return dash
}

// NeedRow is one entity's per-band standing in the need list.
type NeedRow struct {
	EntityID string                      `json:"entity_id"`
	Name     string                      `json:"name"`
	Overall  models.QSLStatus            `json:"overall"`
	Bands    map[string]models.QSLStatus `json:"bands"`
}

// BuildNeedList returns one row per active entity, ordered by name, with
// the best status per tracked band. Bands never worked are absent from
// the row's map so callers can render them as Needed.
func BuildNeedList(collection models.Collection, table *dxcc.Table, bands []string) []NeedRow {
	tracked := make(map[string]bool, len(bands))
	for _, b := range bands {
		tracked[strings.ToLower(b)] = true
	}

	perBand := make(map[string]map[string]models.QSLStatus)
	for _, qso := range collection {
		if !qso.Resolved() {
			continue
		}
		band := strings.ToLower(qso.Band)
		if len(tracked) > 0 && !tracked[band] {
			continue
		}
		slots, ok := perBand[qso.EntityID]
		if !ok {
			slots = make(map[string]models.QSLStatus)
			perBand[qso.EntityID] = slots
		}
		if qso.Status > slots[band] {
			slots[band] = qso.Status
		}
	}

	var rows []NeedRow
	for _, entity := range table.Entities() {
		if entity.Deleted {
			continue
		}
		row := NeedRow{
			EntityID: entity.ID,
			Name:     entity.Name,
			Bands:    map[string]models.QSLStatus{},
		}
		for band, status := range perBand[entity.ID] {
			row.Bands[band] = status
			if status > row.Overall {
				row.Overall = status
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// FilterNeeded trims a need list down to entities not yet confirmed.
func FilterNeeded(rows []NeedRow) []NeedRow {
	var needed []NeedRow
	for _, row := range rows {
		if row.Overall != models.StatusConfirmed {
			needed = append(needed, row)
		}
	}
	return needed
}

func bestByEntity(collection models.Collection) map[string]models.QSLStatus {
	best := make(map[string]models.QSLStatus)
	for _, qso := range collection {
		if !qso.Resolved() {
			continue
		}
		if qso.Status > best[qso.EntityID] {
			best[qso.EntityID] = qso.Status
		} else if _, ok := best[qso.EntityID]; !ok {
			best[qso.EntityID] = qso.Status
		}
	}
	return best
}
