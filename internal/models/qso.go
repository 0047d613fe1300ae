package models

import (
	"fmt"
	"strings"
	"time"
)

func errEmptyField(name string) error {
	return fmt.Errorf("%s must not be empty", name)
}

// QSLStatus is the single confirmation state derived from the per-service
// QSL flags. The ordering of the constants is meaningful: reconciliation
// upgrades a weaker status to a stronger one and never the reverse.
type QSLStatus int

const (
	StatusNeeded QSLStatus = iota
	StatusRequested
	StatusConfirmed
)

func (s QSLStatus) String() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusRequested:
		return "Requested"
	default:
		return "Needed"
	}
}

// ParseQSLStatus parses a display string back into a QSLStatus.
// Matching is case-insensitive; unknown values map to StatusNeeded.
func ParseQSLStatus(s string) QSLStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed", "lotw", "qsl":
		return StatusConfirmed
	case "requested":
		return StatusRequested
	default:
		return StatusNeeded
	}
}

// FlagState is the raw per-service QSL vocabulary from an ADIF record.
// The constant ordering mirrors QSLStatus so per-service states can be
// compared and merged with max().
type FlagState int

const (
	FlagAbsent FlagState = iota
	FlagNo
	FlagRequested
	FlagConfirmed
)

func (f FlagState) String() string {
	switch f {
	case FlagConfirmed:
		return "Y"
	case FlagRequested:
		return "R"
	case FlagNo:
		return "N"
	default:
		return ""
	}
}

// ParseFlag maps an ADIF QSL status letter to a FlagState.
// "V" (verified) counts as confirmed, "Q" (queued) as requested.
func ParseFlag(raw string) FlagState {
	switch raw {
	case "Y", "V":
		return FlagConfirmed
	case "R", "Q":
		return FlagRequested
	case "N":
		return FlagNo
	default:
		return FlagAbsent
	}
}

// ServiceFlags holds the raw QSL state reported by each confirmation service.
type ServiceFlags struct {
	LoTW  FlagState
	EQSL  FlagState
	Paper FlagState
}

// DeriveStatus collapses the three service flags into a single QSLStatus.
// Any confirmed flag wins, then any requested flag, then needed. The result
// does not depend on which service carries the flag.
func (f ServiceFlags) DeriveStatus() QSLStatus {
	states := [3]FlagState{f.LoTW, f.EQSL, f.Paper}
	for _, s := range states {
		if s == FlagConfirmed {
			return StatusConfirmed
		}
	}
	for _, s := range states {
		if s == FlagRequested {
			return StatusRequested
		}
	}
	return StatusNeeded
}

// Merge returns the per-service maximum of two flag sets.
func (f ServiceFlags) Merge(other ServiceFlags) ServiceFlags {
	return ServiceFlags{
		LoTW:  maxFlag(f.LoTW, other.LoTW),
		EQSL:  maxFlag(f.EQSL, other.EQSL),
		Paper: maxFlag(f.Paper, other.Paper),
	}
}

func maxFlag(a, b FlagState) FlagState {
	if b > a {
		return b
	}
	return a
}

// QSO is one logged contact.
type QSO struct {
	ID       string
	Sequence int
	Callsign string // worked station, normalized uppercase

	// EntityID references the resolved DXCC entity; empty when resolution
	// failed and the record awaits manual correction.
	EntityID string
	Country  string // raw country string from the source record

	Date time.Time // calendar date only, no time component
	Band string
	Mode string

	Status QSLStatus
	Flags  ServiceFlags

	// SourceRaw retains the original ADIF field map for auditing
	// unmapped fields. Nil for manually entered contacts.
	SourceRaw map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Validate checks required QSO fields.
func (q *QSO) Validate() error {
	if q.Callsign == "" {
		return errEmptyField("callsign")
	}
	if q.Date.IsZero() {
		return errEmptyField("qso_date")
	}
	if q.Status < StatusNeeded || q.Status > StatusConfirmed {
		return fmt.Errorf("invalid qsl status %d", q.Status)
	}
	return nil
}

// Resolved reports whether the contact maps to a known DXCC entity.
func (q *QSO) Resolved() bool {
	return q.EntityID != ""
}

// DateString formats the QSO date as YYYY-MM-DD.
func (q *QSO) DateString() string {
	if q.Date.IsZero() {
		return ""
	}
	return q.Date.Format("2006-01-02")
}

// Collection is the ordered per-user sequence of QSO records.
type Collection []QSO

// Unresolved returns the contacts whose DXCC entity could not be resolved,
// surfaced to the operator for manual correction.
func (c Collection) Unresolved() []QSO {
	var out []QSO
	for _, q := range c {
		if !q.Resolved() {
			out = append(out, q)
		}
	}
	return out
}

// Entities returns the distinct resolved entity IDs present in the collection.
func (c Collection) Entities() map[string]struct{} {
	out := make(map[string]struct{})
	for _, q := range c {
		if q.Resolved() {
			out[q.EntityID] = struct{}{}
		}
	}
	return out
}

// MergeReport summarizes what happened to every record of an import.
type MergeReport struct {
	Inserted          int `json:"inserted"`
	UpdatedQSLOnly    int `json:"updated_qsl_only"`
	SkippedDuplicate  int `json:"skipped_duplicate"`
	SkippedUnmappable int `json:"skipped_unmappable"`
}

// Total returns the number of source records accounted for by the report.
func (r MergeReport) Total() int {
	return r.Inserted + r.UpdatedQSLOnly + r.SkippedDuplicate + r.SkippedUnmappable
}
