// package reconcile merges imported QSO candidates into an existing per-user
// collection.
//
// Merge is a pure transformation over two inputs; it performs no I/O and
// never mutates its arguments, so callers can run it from any execution
// context and test it deterministically.
package reconcile

import (
	"github.com/desertthunder/dxtrack/internal/models"
)

// key identifies a QSO for duplicate detection. Entries with an unresolved
// entity match on callsign+date only, since entity resolution may improve
// across imports.
type key struct {
	callsign string
	date     string
	entityID string
}

func keysFor(q *models.QSO) (full key, loose key) {
	loose = key{callsign: q.Callsign, date: q.DateString()}
	full = loose
	full.entityID = q.EntityID
	return full, loose
}

// Merge folds candidates into the existing collection and reports what
// happened to every candidate.
//
// For each candidate: a duplicate with a weaker QSL status is upgraded in
// place (status and flags; counted UpdatedQSLOnly), a duplicate with an
// equal or stronger status is left untouched (SkippedDuplicate), and a
// non-duplicate is appended in candidate order (Inserted). Statuses are
// never downgraded.
func Merge(existing models.Collection, candidates []models.QSO) (models.Collection, models.MergeReport) {
	merged := make(models.Collection, len(existing))
	copy(merged, existing)

	// Index existing entries under both the entity-qualified key and the
	// entity-agnostic one so unresolved rows participate in matching.
	index := make(map[key]int, len(merged)*2)
	add := func(i int) {
		full, loose := keysFor(&merged[i])
		if merged[i].Resolved() {
			if _, taken := index[full]; !taken {
				index[full] = i
			}
		}
		if _, taken := index[loose]; !taken {
			index[loose] = i
		}
	}
	for i := range merged {
		add(i)
	}

	var report models.MergeReport

	for ci := range candidates {
		c := candidates[ci]
		full, loose := keysFor(&c)

		at, dup := index[full]
		if !dup {
			// The loose key only bridges unresolved rows: two fully
			// resolved QSOs with different entities are distinct contacts.
			if i, ok := index[loose]; ok && (!merged[i].Resolved() || !c.Resolved()) {
				at, dup = i, true
			}
		}

		if !dup {
			merged = append(merged, c)
			add(len(merged) - 1)
			report.Inserted++
			continue
		}

		current := &merged[at]
		if c.Status > current.Status {
			current.Status = c.Status
			current.Flags = current.Flags.Merge(c.Flags)
			current.UpdatedAt = c.UpdatedAt
			if !current.Resolved() && c.Resolved() {
				// A later import carrying the resolution fills the gap.
				current.EntityID = c.EntityID
				add(at)
			}
			report.UpdatedQSLOnly++
		} else {
			report.SkippedDuplicate++
		}
	}

	return merged, report
}
