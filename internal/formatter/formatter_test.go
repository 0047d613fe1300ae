package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/stats"
)

func sampleCollection() models.Collection {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return models.Collection{
		{Callsign: "JA1ABC", EntityID: "339", Country: "Japan", Date: date, Band: "20m", Mode: "FT8", Status: models.StatusConfirmed, Flags: models.ServiceFlags{LoTW: models.FlagConfirmed}},
		{Callsign: "DL2XYZ", EntityID: "230", Country: "Federal Republic of Germany", Date: date, Band: "40m", Mode: "CW", Status: models.StatusRequested},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleCollection())
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "Callsign" {
		t.Errorf("first header = %s, want Callsign", records[0][0])
	}
	if records[1][0] != "JA1ABC" || records[1][6] != "Confirmed" || records[1][7] != "Y" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][1] != "2024-03-15" {
		t.Errorf("date column = %s, want 2024-03-15", records[2][1])
	}
}

func TestCollectionToText(t *testing.T) {
	out := string(CollectionToText(sampleCollection()))
	if !strings.Contains(out, "CALLSIGN") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "JA1ABC") || !strings.Contains(out, "Requested") {
		t.Errorf("missing rows: %q", out)
	}
}

func TestNeedListToText(t *testing.T) {
	rows := []stats.NeedRow{
		{EntityID: "1", Name: "Canada", Overall: models.StatusNeeded, Bands: map[string]models.QSLStatus{}},
		{EntityID: "339", Name: "Japan", Overall: models.StatusConfirmed, Bands: map[string]models.QSLStatus{"20m": models.StatusConfirmed}},
	}
	out := string(NeedListToText(rows, []string{"20m", "40m"}))

	if !strings.Contains(out, "20m") || !strings.Contains(out, "40m") {
		t.Errorf("band columns missing: %q", out)
	}
	if !strings.Contains(out, "Canada") {
		t.Errorf("entity row missing: %q", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "-") {
		t.Errorf("never-worked band should render as dash: %q", lines[2])
	}
}

func TestReportToText(t *testing.T) {
	report := models.MergeReport{Inserted: 5, UpdatedQSLOnly: 2, SkippedDuplicate: 3, SkippedUnmappable: 1}
	out := string(ReportToText(report))

	for _, want := range []string{"Inserted:        5", "QSL updated:     2", "Duplicates:      3", "Unmappable:      1", "Total processed: 11"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q in %q", want, out)
		}
	}
}

func TestDashboardToText(t *testing.T) {
	dash := stats.Dashboard{TotalQSOs: 10, WorkedEntities: 4, ActiveEntities: 340, Confirmed: 2, Requested: 1, Needed: 338}
	out := string(DashboardToText(dash))

	if !strings.Contains(out, "4 / 340") {
		t.Errorf("worked line missing: %q", out)
	}
	if strings.Contains(out, "Unresolved") {
		t.Errorf("unresolved line should be omitted when zero: %q", out)
	}
}
