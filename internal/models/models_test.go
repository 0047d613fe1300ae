package models

import (
	"testing"
	"time"
)

func TestParseFlag(t *testing.T) {
	cases := []struct {
		raw  string
		want FlagState
	}{
		{"Y", FlagConfirmed},
		{"V", FlagConfirmed},
		{"R", FlagRequested},
		{"Q", FlagRequested},
		{"N", FlagNo},
		{"", FlagAbsent},
		{"X", FlagAbsent},
	}
	for _, tc := range cases {
		if got := ParseFlag(tc.raw); got != tc.want {
			t.Errorf("ParseFlag(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name  string
		flags ServiceFlags
		want  QSLStatus
	}{
		{"all absent", ServiceFlags{}, StatusNeeded},
		{"explicit no", ServiceFlags{LoTW: FlagNo, Paper: FlagNo}, StatusNeeded},
		{"one requested", ServiceFlags{EQSL: FlagRequested}, StatusRequested},
		{"confirmed beats requested", ServiceFlags{LoTW: FlagRequested, Paper: FlagConfirmed}, StatusConfirmed},
		{"any service confirms", ServiceFlags{EQSL: FlagConfirmed}, StatusConfirmed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.flags.DeriveStatus(); got != tc.want {
				t.Errorf("DeriveStatus() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestServiceFlagsMerge(t *testing.T) {
	a := ServiceFlags{LoTW: FlagConfirmed, Paper: FlagNo}
	b := ServiceFlags{LoTW: FlagNo, EQSL: FlagRequested, Paper: FlagRequested}

	merged := a.Merge(b)
	if merged.LoTW != FlagConfirmed {
		t.Errorf("LoTW downgraded: %v", merged.LoTW)
	}
	if merged.EQSL != FlagRequested || merged.Paper != FlagRequested {
		t.Errorf("per-service max not taken: %+v", merged)
	}

	// commutative
	if a.Merge(b) != b.Merge(a) {
		t.Errorf("merge is not commutative")
	}
}

func TestParseQSLStatus(t *testing.T) {
	if ParseQSLStatus("confirmed") != StatusConfirmed {
		t.Errorf("lowercase not accepted")
	}
	if ParseQSLStatus("Requested") != StatusRequested {
		t.Errorf("Requested not parsed")
	}
	if ParseQSLStatus("garbage") != StatusNeeded {
		t.Errorf("unknown should default to Needed")
	}
}

func TestQSOValidate(t *testing.T) {
	valid := QSO{Callsign: "JA1ABC", Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid QSO rejected: %v", err)
	}

	missingCall := QSO{Date: time.Now()}
	if err := missingCall.Validate(); err == nil {
		t.Errorf("missing callsign accepted")
	}

	missingDate := QSO{Callsign: "JA1ABC"}
	if err := missingDate.Validate(); err == nil {
		t.Errorf("missing date accepted")
	}
}

func TestCollection(t *testing.T) {
	c := Collection{
		{Callsign: "JA1ABC", EntityID: "339"},
		{Callsign: "XX9XX"},
		{Callsign: "DL2XYZ", EntityID: "230"},
		{Callsign: "JA2DEF", EntityID: "339"},
	}

	if got := c.Unresolved(); len(got) != 1 || got[0].Callsign != "XX9XX" {
		t.Errorf("Unresolved() = %v", got)
	}

	entities := c.Entities()
	if len(entities) != 2 {
		t.Errorf("Entities() returned %d ids", len(entities))
	}
	if _, ok := entities["339"]; !ok {
		t.Errorf("entity 339 missing")
	}
}

func TestMergeReportTotal(t *testing.T) {
	report := MergeReport{Inserted: 2, UpdatedQSLOnly: 1, SkippedDuplicate: 3, SkippedUnmappable: 4}
	if report.Total() != 10 {
		t.Errorf("Total() = %d, want 10", report.Total())
	}
}

func TestUserValidate(t *testing.T) {
	user := NewUser("W1AW", "hash")
	if err := user.Validate(); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	empty := NewUser("", "hash")
	if err := empty.Validate(); err == nil {
		t.Errorf("empty callsign accepted")
	}
}
