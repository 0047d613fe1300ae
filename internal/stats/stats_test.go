package stats

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/shared"
)

func testTable() *dxcc.Table {
	return dxcc.NewTable([]dxcc.Entity{
		{ID: "339", Name: "Japan", Prefixes: []string{"JA"}},
		{ID: "230", Name: "Federal Republic of Germany", Prefixes: []string{"DL"}},
		{ID: "1", Name: "Canada", Prefixes: []string{"VE"}},
		{ID: "229", Name: "German Democratic Republic", Prefixes: []string{"Y2"}, Deleted: true},
	})
}

func testCollection() models.Collection {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return models.Collection{
		{Callsign: "JA1ABC", EntityID: "339", Date: date, Band: "20m", Status: models.StatusConfirmed},
		{Callsign: "JA2DEF", EntityID: "339", Date: date, Band: "40m", Status: models.StatusNeeded},
		{Callsign: "DL2XYZ", EntityID: "230", Date: date, Band: "40m", Status: models.StatusRequested},
		{Callsign: "Y22AAA", EntityID: "229", Date: date, Band: "20m", Status: models.StatusConfirmed},
		{Callsign: "UNKNWN", EntityID: "", Date: date, Band: "15m", Status: models.StatusNeeded},
	}
}

func TestBuildDashboard(t *testing.T) {
	dash := BuildDashboard(testCollection(), testTable())

	if dash.TotalQSOs != 5 {
		t.Errorf("TotalQSOs = %d, want 5", dash.TotalQSOs)
	}
	if dash.WorkedEntities != 2 {
		t.Errorf("WorkedEntities = %d, want 2 (deleted entity excluded)", dash.WorkedEntities)
	}
	if dash.Confirmed != 1 {
		t.Errorf("Confirmed = %d, want 1", dash.Confirmed)
	}
	if dash.Requested != 1 {
		t.Errorf("Requested = %d, want 1", dash.Requested)
	}
	if dash.ActiveEntities != 3 {
		t.Errorf("ActiveEntities = %d, want 3", dash.ActiveEntities)
	}
	if dash.Needed != 2 {
		t.Errorf("Needed = %d, want 2", dash.Needed)
	}
	if dash.UnresolvedQSOs != 1 {
		t.Errorf("UnresolvedQSOs = %d, want 1", dash.UnresolvedQSOs)
	}
	if dash.DeletedEntities != 1 {
		t.Errorf("DeletedEntities = %d, want 1", dash.DeletedEntities)
	}
}

func TestBuildNeedList(t *testing.T) {
	rows := BuildNeedList(testCollection(), testTable(), []string{"20m", "40m"})

	if len(rows) != 3 {
		t.Fatalf("expected 3 active rows, got %d", len(rows))
	}

	byName := map[string]NeedRow{}
	for _, row := range rows {
		byName[row.Name] = row
	}

	japan := byName["Japan"]
	if japan.Overall != models.StatusConfirmed {
		t.Errorf("Japan overall = %v, want Confirmed", japan.Overall)
	}
	if japan.Bands["20m"] != models.StatusConfirmed {
		t.Errorf("Japan 20m = %v, want Confirmed", japan.Bands["20m"])
	}
	if japan.Bands["40m"] != models.StatusNeeded {
		t.Errorf("Japan 40m = %v, want Needed", japan.Bands["40m"])
	}

	if byName["Canada"].Overall != models.StatusNeeded {
		t.Errorf("never-worked Canada should be Needed")
	}

	needed := FilterNeeded(rows)
	if len(needed) != 2 {
		t.Errorf("FilterNeeded returned %d rows, want 2", len(needed))
	}
	for _, row := range needed {
		if row.Name == "Japan" {
			t.Errorf("confirmed entity in need list")
		}
	}
}

const challengeCSV = `LoTW DXCC Challenge export
Generated 2024-06-01

DXCC,Band,Mode
Japan,20M,FT8
Japan,40M,CW
Federal Republic of Germany,20M,SSB
,,
`

func TestParseChallenge(t *testing.T) {
	t.Run("valid export", func(t *testing.T) {
		summary, err := ParseChallenge(strings.NewReader(challengeCSV))
		if err != nil {
			t.Fatalf("ParseChallenge failed: %v", err)
		}
		if summary.Total != 3 {
			t.Errorf("Total = %d, want 3", summary.Total)
		}
		if summary.PerBand["20m"] != 2 {
			t.Errorf("20m credits = %d, want 2", summary.PerBand["20m"])
		}
		if got := summary.Bands(); len(got) != 2 || got[0] != "20m" || got[1] != "40m" {
			t.Errorf("Bands() = %v", got)
		}
		if summary.Slots[0].Mode != "FT8" {
			t.Errorf("first slot mode = %s, want FT8", summary.Slots[0].Mode)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := ParseChallenge(strings.NewReader("a,b,c\n1,2,3\n"))
		if !errors.Is(err, shared.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		summary, err := ParseChallenge(strings.NewReader(challengeCSV))
		if err != nil {
			t.Fatalf("ParseChallenge failed: %v", err)
		}
		path := filepath.Join(t.TempDir(), "challenge.json")
		if err := SaveChallenge(path, summary); err != nil {
			t.Fatalf("SaveChallenge failed: %v", err)
		}
		loaded, err := LoadChallenge(path)
		if err != nil {
			t.Fatalf("LoadChallenge failed: %v", err)
		}
		if loaded.Total != summary.Total || loaded.PerBand["40m"] != 1 {
			t.Errorf("loaded summary mismatch: %+v", loaded)
		}
	})
}
