package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]int{"inserted": 3}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if got := output.String(); got != "{\"inserted\":3}\n" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writePlain("hello %s\n", "world")
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})
}

// testApp builds a runner over temp storage and returns the root command
// plus the output buffer.
func testApp(t *testing.T) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Data.Dir = t.TempDir()
	config.Database.Path = filepath.Join(t.TempDir(), "test.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(output),
		Output: output,
	})

	app := &cli.Command{
		Name:     "dxtrack",
		Commands: runner.register(),
	}
	return app, output
}

func TestQSOCommands(t *testing.T) {
	app, output := testApp(t)
	ctx := context.Background()

	t.Run("add resolves entity from callsign", func(t *testing.T) {
		err := app.Run(ctx, []string{"dxtrack", "qso", "add",
			"--user", "W1AW", "--call", "JA1ABC", "--date", "2024-03-15",
			"--band", "20m", "--mode", "FT8"})
		if err != nil {
			t.Fatalf("qso add failed: %v", err)
		}
		if !strings.Contains(output.String(), "Japan") {
			t.Errorf("expected entity resolution in output: %q", output.String())
		}
		output.Reset()
	})

	t.Run("duplicate add is skipped", func(t *testing.T) {
		err := app.Run(ctx, []string{"dxtrack", "qso", "add",
			"--user", "W1AW", "--call", "JA1ABC", "--date", "2024-03-15",
			"--band", "20m", "--mode", "FT8"})
		if err != nil {
			t.Fatalf("qso add failed: %v", err)
		}
		if !strings.Contains(output.String(), "Already logged") {
			t.Errorf("expected duplicate notice: %q", output.String())
		}
		output.Reset()
	})

	t.Run("list shows the QSO", func(t *testing.T) {
		err := app.Run(ctx, []string{"dxtrack", "qso", "list", "--user", "W1AW"})
		if err != nil {
			t.Fatalf("qso list failed: %v", err)
		}
		if !strings.Contains(output.String(), "JA1ABC") {
			t.Errorf("expected QSO row: %q", output.String())
		}
		output.Reset()
	})

	t.Run("rm removes the QSO", func(t *testing.T) {
		err := app.Run(ctx, []string{"dxtrack", "qso", "rm",
			"--user", "W1AW", "--call", "JA1ABC", "--date", "2024-03-15"})
		if err != nil {
			t.Fatalf("qso rm failed: %v", err)
		}
		if !strings.Contains(output.String(), "Removed 1") {
			t.Errorf("expected removal notice: %q", output.String())
		}
		output.Reset()

		if err := app.Run(ctx, []string{"dxtrack", "qso", "list", "--user", "W1AW"}); err != nil {
			t.Fatalf("qso list failed: %v", err)
		}
		if !strings.Contains(output.String(), "No QSOs logged") {
			t.Errorf("expected empty logbook: %q", output.String())
		}
	})
}

func TestStatsCommands(t *testing.T) {
	app, output := testApp(t)
	ctx := context.Background()

	if err := app.Run(ctx, []string{"dxtrack", "qso", "add",
		"--user", "W1AW", "--call", "JA1ABC", "--date", "2024-03-15",
		"--band", "20m", "--mode", "FT8", "--status", "confirmed"}); err != nil {
		t.Fatalf("qso add failed: %v", err)
	}
	output.Reset()

	t.Run("dashboard", func(t *testing.T) {
		if err := app.Run(ctx, []string{"dxtrack", "stats", "dashboard", "--user", "W1AW"}); err != nil {
			t.Fatalf("dashboard failed: %v", err)
		}
		if !strings.Contains(output.String(), "Confirmed") {
			t.Errorf("expected dashboard output: %q", output.String())
		}
		output.Reset()
	})

	t.Run("needs omits confirmed entities", func(t *testing.T) {
		if err := app.Run(ctx, []string{"dxtrack", "stats", "needs", "--user", "W1AW"}); err != nil {
			t.Fatalf("needs failed: %v", err)
		}
		if strings.Contains(output.String(), "Japan") {
			t.Errorf("confirmed entity should not appear in need list")
		}
		output.Reset()
	})

	t.Run("challenge", func(t *testing.T) {
		csvPath := filepath.Join(t.TempDir(), "challenge.csv")
		csv := "DXCC,Band\nJapan,20M\nCanada,40M\n"
		if err := os.WriteFile(csvPath, []byte(csv), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if err := app.Run(ctx, []string{"dxtrack", "stats", "challenge", csvPath}); err != nil {
			t.Fatalf("challenge failed: %v", err)
		}
		if !strings.Contains(output.String(), "Total slots: 2") {
			t.Errorf("expected challenge summary: %q", output.String())
		}
	})
}

func TestImportCommand(t *testing.T) {
	app, output := testApp(t)
	ctx := context.Background()

	adifPath := filepath.Join(t.TempDir(), "log.adi")
	adif := "<ADIF_VER:5>3.1.4<EOH>\n" +
		"<CALL:6>JA1ABC<QSO_DATE:8>20240315<BAND:3>20m<MODE:3>FT8<LOTW_QSL_RCVD:1>Y<EOR>\n" +
		"<CALL:6>VE3XYZ<QSO_DATE:8>20240316<BAND:3>40m<MODE:2>CW<EOR>\n"
	if err := os.WriteFile(adifPath, []byte(adif), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := app.Run(ctx, []string{"dxtrack", "import", "--user", "W1AW", "--quiet", adifPath}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(output.String(), "Inserted: 2") {
		t.Errorf("expected 2 inserted: %q", output.String())
	}
	output.Reset()

	// reimport is a no-op
	if err := app.Run(ctx, []string{"dxtrack", "import", "--user", "W1AW", "--quiet", adifPath}); err != nil {
		t.Fatalf("reimport failed: %v", err)
	}
	if !strings.Contains(output.String(), "Inserted: 0") {
		t.Errorf("expected idempotent reimport: %q", output.String())
	}
	if !strings.Contains(output.String(), "Duplicates skipped: 2") {
		t.Errorf("expected duplicates on reimport: %q", output.String())
	}
}
