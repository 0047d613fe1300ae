package dxcc

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/dxtrack/internal/shared"
)

func testEntities() []Entity {
	return []Entity{
		{ID: "339", Name: "Japan", Prefixes: []string{"JA", "JE", "7J"}},
		{ID: "230", Name: "Federal Republic of Germany", Prefixes: []string{"DL", "DA"}, Aliases: []string{"GERMANY", "FED REP OF GERMANY"}},
		{ID: "291", Name: "United States of America", Prefixes: []string{"K", "W", "N", "KH6"}, Aliases: []string{"USA", "UNITED STATES"}},
		{ID: "503", Name: "Czech Republic", Prefixes: []string{"OK", "OL"}},
		{ID: "504", Name: "Czechoslovakia", Deleted: true},
	}
}

func TestResolveEntity(t *testing.T) {
	table := NewTable(testEntities())

	cases := []struct {
		name  string
		raw   string
		want  string
		found bool
	}{
		{"numeric id", "339", "339", true},
		{"exact name", "Japan", "339", true},
		{"case insensitive name", "jApAn", "339", true},
		{"alias", "USA", "291", true},
		{"alias with punctuation", "Fed. Rep. of Germany", "230", true},
		{"unique name prefix", "United States", "291", true},
		{"ambiguous fragment", "Czech", "", false},
		{"unknown", "Atlantis", "", false},
		{"empty", "", "", false},
		{"unknown numeric", "9999", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entity, ok := table.ResolveEntity(tc.raw)
			if ok != tc.found {
				t.Fatalf("found = %v, want %v", ok, tc.found)
			}
			if ok && entity.ID != tc.want {
				t.Errorf("entity = %s, want %s", entity.ID, tc.want)
			}
		})
	}
}

func TestEntityForCallsign(t *testing.T) {
	table := NewTable(testEntities())

	t.Run("longest prefix wins", func(t *testing.T) {
		entity, prefix, ok := table.EntityForCallsign("KH6ABC")
		if !ok || entity.ID != "291" {
			t.Fatalf("entity = %v, ok = %v", entity, ok)
		}
		if prefix != "KH6" {
			t.Errorf("prefix = %s, want KH6", prefix)
		}
	})

	t.Run("single letter prefix", func(t *testing.T) {
		entity, prefix, ok := table.EntityForCallsign("w1aw")
		if !ok || entity.ID != "291" || prefix != "W" {
			t.Errorf("entity=%v prefix=%s ok=%v", entity.ID, prefix, ok)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, _, ok := table.EntityForCallsign("ZZ9ZZ"); ok {
			t.Errorf("expected no match")
		}
	})

	t.Run("empty callsign", func(t *testing.T) {
		if _, _, ok := table.EntityForCallsign(""); ok {
			t.Errorf("expected no match for empty callsign")
		}
	})
}

func TestTableStats(t *testing.T) {
	table := NewTable(testEntities())
	active, total, prefixes := table.Stats()
	if active != 4 {
		t.Errorf("active = %d, want 4", active)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if prefixes != 11 {
		t.Errorf("prefixes = %d, want 11", prefixes)
	}
}

func TestLoadEmbedded(t *testing.T) {
	entities, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded failed: %v", err)
	}
	if len(entities) < 200 {
		t.Errorf("dataset suspiciously small: %d entities", len(entities))
	}

	table := NewTable(entities)
	if entity, ok := table.ResolveEntity("Japan"); !ok || entity.ID != "339" {
		t.Errorf("Japan not in embedded dataset")
	}
	if entity, _, ok := table.EntityForCallsign("W1AW"); !ok || entity.ID != "291" {
		t.Errorf("W1AW should resolve to the United States")
	}
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestSeedAndLoad(t *testing.T) {
	db := setupTestDB(t)

	entities, prefixes, err := Seed(db)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if entities == 0 || prefixes == 0 {
		t.Fatalf("nothing seeded: %d entities, %d prefixes", entities, prefixes)
	}

	table, err := Load(db)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if entity, ok := table.ResolveEntity("Japan"); !ok || entity.ID != "339" {
		t.Errorf("seeded table missing Japan")
	}

	// reseeding replaces rather than accumulates
	again, _, err := Seed(db)
	if err != nil {
		t.Fatalf("reseed failed: %v", err)
	}
	if again != entities {
		t.Errorf("reseed changed entity count: %d vs %d", again, entities)
	}
}
