package adif

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/shared"
)

// adifDate is the compact numeric date layout of the QSO_DATE field.
const adifDate = "20060102"

// Mapper converts raw ADIF records into QSO candidates. The DXCC table is
// injected so mapping stays testable without ambient globals.
type Mapper struct {
	table *dxcc.Table
}

// NewMapper creates a Mapper resolving against the given DXCC table.
func NewMapper(table *dxcc.Table) *Mapper {
	return &Mapper{table: table}
}

// MapRecord converts one raw field map into a QSO candidate.
//
// A missing callsign or an unparsable date fails the record with a
// [shared.ErrFieldMapping] wrap; the caller skips and counts it. A country
// that resolves to no DXCC entity is NOT an error: the QSO is produced
// unresolved and surfaced for manual correction.
func (m *Mapper) MapRecord(rec Record) (*models.QSO, error) {
	call := strings.ToUpper(strings.TrimSpace(rec["CALL"]))
	if call == "" {
		return nil, fmt.Errorf("%w: missing CALL field", shared.ErrFieldMapping)
	}

	rawDate := strings.TrimSpace(rec["QSO_DATE"])
	if rawDate == "" {
		return nil, fmt.Errorf("%w: missing QSO_DATE field for %s", shared.ErrFieldMapping, call)
	}
	date, err := time.Parse(adifDate, rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid QSO_DATE %q for %s", shared.ErrFieldMapping, rawDate, call)
	}

	country := strings.TrimSpace(rec["COUNTRY"])
	flags := mapFlags(rec)

	now := time.Now()
	qso := &models.QSO{
		Callsign:  call,
		Country:   country,
		Date:      date,
		Band:      strings.ToLower(strings.TrimSpace(rec["BAND"])),
		Mode:      strings.ToUpper(strings.TrimSpace(rec["MODE"])),
		Flags:     flags,
		Status:    flags.DeriveStatus(),
		SourceRaw: rec,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if entity, ok := m.resolve(rec, call, country); ok {
		qso.EntityID = entity.ID
		if country == "" {
			qso.Country = entity.Name
		}
	}

	return qso, nil
}

// resolve finds the DXCC entity for a record: exact numeric DXCC id field,
// then country name/alias, then callsign prefix as a last resort.
func (m *Mapper) resolve(rec Record, call, country string) (dxcc.Entity, bool) {
	if id := strings.TrimSpace(rec["DXCC"]); id != "" {
		if e, ok := m.table.ResolveEntity(id); ok {
			return e, true
		}
	}
	if country != "" {
		if e, ok := m.table.ResolveEntity(country); ok {
			return e, true
		}
	}
	if e, _, ok := m.table.EntityForCallsign(call); ok {
		return e, true
	}
	return dxcc.Entity{}, false
}

// mapFlags extracts the per-service QSL state from a record.
//
// LoTW reads LOTW_QSL_RCVD or any APP_LOTW_*RCVD variant, eQSL reads
// EQSL_QSL_RCVD, and paper reads QSL_RCVD plus two secondary signals: a
// non-empty QSLRDATE counts as a received card, and QSL_SENT marks an
// outstanding request. Each service keeps its strongest signal, so the
// derived status cannot depend on field order.
func mapFlags(rec Record) models.ServiceFlags {
	lotw := models.ParseFlag(fieldUpper(rec, "LOTW_QSL_RCVD"))
	if lotw == models.FlagAbsent {
		for name, value := range rec {
			if strings.HasPrefix(name, "APP_LOTW_") && strings.HasSuffix(name, "RCVD") {
				lotw = models.ParseFlag(strings.ToUpper(strings.TrimSpace(value)))
				if lotw != models.FlagAbsent {
					break
				}
			}
		}
	}

	paper := models.ParseFlag(fieldUpper(rec, "QSL_RCVD"))
	if strings.TrimSpace(rec["QSLRDATE"]) != "" && paper < models.FlagConfirmed {
		paper = models.FlagConfirmed
	}
	switch fieldUpper(rec, "QSL_SENT") {
	case "Y", "Q", "R":
		if paper < models.FlagRequested {
			paper = models.FlagRequested
		}
	}

	return models.ServiceFlags{
		LoTW:  lotw,
		EQSL:  models.ParseFlag(fieldUpper(rec, "EQSL_QSL_RCVD")),
		Paper: paper,
	}
}

func fieldUpper(rec Record, name string) string {
	return strings.ToUpper(strings.TrimSpace(rec[name]))
}
