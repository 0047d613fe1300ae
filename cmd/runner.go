package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/dxtrack/internal/adif"
	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/repositories"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/desertthunder/dxtrack/internal/storage"
	"github.com/desertthunder/dxtrack/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, importCommand, qsoCommand, statsCommand, dxccCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, used when the TUI takes over the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openDatabase opens and configures the sqlite database from config.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database)
	return db, nil
}

// openStore resolves the persistence backend for collection commands.
// The returned cleanup func closes any underlying database handle.
func (r *Runner) openStore(cmd *cli.Command) (storage.Store, func(), error) {
	switch backend := strings.ToLower(cmd.String("backend")); backend {
	case "", "xlsx":
		return storage.NewXLSXStore(r.config.Data.Dir), func() {}, nil
	case "sqlite", "db":
		db, err := r.openDatabase()
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLiteStore(repositories.NewQSORepository(db)), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown backend %q", shared.ErrInvalidFlag, backend)
	}
}

// loadTable loads the DXCC reference table, preferring seeded database
// rows for the sqlite backend and falling back to the embedded dataset.
func (r *Runner) loadTable(cmd *cli.Command) (*dxcc.Table, error) {
	if strings.EqualFold(cmd.String("backend"), "sqlite") {
		db, err := r.openDatabase()
		if err == nil {
			defer db.Close()
			return dxcc.Load(db)
		}
		r.logger.Warn("database unavailable, using embedded entity list", "error", err)
	}

	entities, err := dxcc.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return dxcc.NewTable(entities), nil
}

// newEngine builds an import engine over the given store.
func (r *Runner) newEngine(store storage.Store, table *dxcc.Table) *tasks.ImportEngine {
	return tasks.NewImportEngine(store, adif.NewMapper(table), r.logger, r.config.Import.MaxRecords)
}

// currentUser resolves the acting callsign: --user flag first, then the
// saved login session.
func (r *Runner) currentUser(cmd *cli.Command) (string, error) {
	if user := cmd.String("user"); user != "" {
		return strings.ToUpper(strings.TrimSpace(user)), nil
	}
	session, err := shared.LoadSession(r.config.Data)
	if err != nil {
		return "", err
	}
	return session.Callsign, nil
}

// trackedBands returns the band filter for need-list commands, nil when
// all bands count.
func (r *Runner) trackedBands() []string {
	if r.config.Tracking.AllBands {
		return nil
	}
	return r.config.Tracking.Bands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
