package shared

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("ids not unique: %q %q", a, b)
	}
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := DefaultConfig()
		if config.Database.Path == "" {
			t.Errorf("default database path empty")
		}
		if config.Data.Dir == "" || config.Data.SessionFile == "" {
			t.Errorf("default data paths empty: %+v", config.Data)
		}
		if config.Import.MaxRecords <= 0 {
			t.Errorf("default import cap = %d", config.Import.MaxRecords)
		}
		if len(config.Tracking.Bands) == 0 {
			t.Errorf("no default tracked bands")
		}
	})

	t.Run("create and load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Errorf("overwriting existing config should fail")
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config differs from defaults")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Errorf("expected error for missing file")
		}
	})
}

func TestSession(t *testing.T) {
	cfg := DataConfig{Dir: t.TempDir(), SessionFile: "session.toml"}

	t.Run("load before login", func(t *testing.T) {
		if _, err := LoadSession(cfg); !errors.Is(err, ErrNotLoggedIn) {
			t.Fatalf("expected ErrNotLoggedIn, got %v", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		saved, err := SaveSession(cfg, "w1aw")
		if err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
		if saved.Callsign != "W1AW" {
			t.Errorf("callsign not normalized: %s", saved.Callsign)
		}

		loaded, err := LoadSession(cfg)
		if err != nil {
			t.Fatalf("LoadSession failed: %v", err)
		}
		if loaded.Callsign != "W1AW" || loaded.Token != saved.Token {
			t.Errorf("session mismatch: %+v vs %+v", loaded, saved)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := ClearSession(cfg); err != nil {
			t.Fatalf("ClearSession failed: %v", err)
		}
		if _, err := LoadSession(cfg); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("session survived logout")
		}

		// clearing twice is fine
		if err := ClearSession(cfg); err != nil {
			t.Errorf("second clear failed: %v", err)
		}
	})
}

func TestMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	// migrations are recorded and not reapplied
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	for _, table := range []string{"users", "qsos", "dxcc_entities", "dxcc_prefixes"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("RollbackMigration failed: %v", err)
	}
	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='qsos'").Scan(&name)
	if err == nil {
		t.Errorf("qsos table still present after rollback")
	}
}
