package dxcc

import (
	"sort"
	"strings"
)

// prefixRule maps one callsign prefix to an entity, sorted longest-first so
// the most specific prefix wins.
type prefixRule struct {
	prefix   string
	entityID string
}

// Table is the immutable in-memory DXCC reference set. It is loaded once at
// startup and injected into the field mapper and stats layer; it is never
// mutated after construction, so it is safe to share without locking.
type Table struct {
	entities    map[string]Entity
	nameIndex   map[string]string // normalized canonical name -> entity id
	aliasIndex  map[string]string // normalized alias -> entity id
	prefixRules []prefixRule
}

// NewTable builds a Table from a slice of entities.
func NewTable(entities []Entity) *Table {
	t := &Table{
		entities:   make(map[string]Entity, len(entities)),
		nameIndex:  make(map[string]string, len(entities)),
		aliasIndex: make(map[string]string),
	}

	for _, e := range entities {
		t.entities[e.ID] = e
		t.nameIndex[normalizeName(e.Name)] = e.ID
		for _, alias := range e.Aliases {
			t.aliasIndex[normalizeName(alias)] = e.ID
		}
		for _, p := range e.Prefixes {
			t.prefixRules = append(t.prefixRules, prefixRule{prefix: p, entityID: e.ID})
		}
	}

	// Longest prefix wins; ties broken alphabetically for determinism.
	sort.Slice(t.prefixRules, func(i, j int) bool {
		a, b := t.prefixRules[i].prefix, t.prefixRules[j].prefix
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return t
}

// Entity returns the entity with the given id.
func (t *Table) Entity(id string) (Entity, bool) {
	e, ok := t.entities[id]
	return e, ok
}

// ResolveEntity resolves a raw ADIF country or DXCC id field to an entity.
//
// Resolution order: exact numeric entity id, exact canonical name, alias
// table, then a fuzzy pass that matches iff the raw string is a prefix of
// exactly one canonical name (so "Czech Rep" finds the Czech Republic while
// ambiguous fragments resolve to nothing).
func (t *Table) ResolveEntity(raw string) (Entity, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Entity{}, false
	}

	if e, ok := t.entities[raw]; ok && isNumeric(raw) {
		return e, true
	}

	norm := normalizeName(raw)
	if id, ok := t.nameIndex[norm]; ok {
		return t.entities[id], true
	}
	if id, ok := t.aliasIndex[norm]; ok {
		return t.entities[id], true
	}

	var match string
	for name, id := range t.nameIndex {
		if strings.HasPrefix(name, norm) {
			if match != "" && match != id {
				return Entity{}, false // ambiguous
			}
			match = id
		}
	}
	if match != "" {
		return t.entities[match], true
	}

	return Entity{}, false
}

// EntityForCallsign resolves a callsign to its entity via longest-prefix
// match. Returns the entity and the matched prefix.
func (t *Table) EntityForCallsign(call string) (Entity, string, bool) {
	call = strings.ToUpper(strings.TrimSpace(call))
	if call == "" {
		return Entity{}, "", false
	}

	for _, rule := range t.prefixRules {
		if strings.HasPrefix(call, rule.prefix) {
			return t.entities[rule.entityID], rule.prefix, true
		}
	}
	return Entity{}, "", false
}

// PrefixForCallsign returns the longest matching prefix for a callsign, or
// the empty string when nothing matches.
func (t *Table) PrefixForCallsign(call string) string {
	_, prefix, _ := t.EntityForCallsign(call)
	return prefix
}

// ActiveCount returns the number of non-deleted entities.
func (t *Table) ActiveCount() int {
	n := 0
	for _, e := range t.entities {
		if !e.Deleted {
			n++
		}
	}
	return n
}

// Stats returns (active entities, total entities, prefix rules).
func (t *Table) Stats() (int, int, int) {
	return t.ActiveCount(), len(t.entities), len(t.prefixRules)
}

// Entities returns all entities in the table, sorted by name.
func (t *Table) Entities() []Entity {
	out := make([]Entity, 0, len(t.entities))
	for _, e := range t.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// normalizeName uppercases, trims, drops periods and collapses whitespace so
// "Fed. Rep. of  Germany" and "FED REP OF GERMANY" compare equal.
func normalizeName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
