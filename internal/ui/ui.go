package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/dxtrack/internal/dxcc"
	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/desertthunder/dxtrack/internal/stats"
	"github.com/desertthunder/dxtrack/internal/storage"
	"github.com/desertthunder/dxtrack/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DashboardView ViewState = iota
	LogView
	NeedListView
	ImportView
	ReportView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	userID       string
	store        storage.Store
	table        *dxcc.Table
	engine       *tasks.ImportEngine
	bands        []string
	importPath   string
	width        int
	height       int
	collection   models.Collection
	dashboard    stats.Dashboard
	logList      list.Model
	needList     list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.ImportResult
	err          error
	help         help.Model
	keys         keyMap
}

type collectionLoadedMsg struct {
	collection models.Collection
	err        error
}

type progressUpdateMsg tasks.ProgressUpdate

type importCompleteMsg struct {
	result *tasks.ImportResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
// importPath is optional; when empty the import binding is disabled.
func NewModel(ctx context.Context, userID string, store storage.Store, table *dxcc.Table, engine *tasks.ImportEngine, bands []string, importPath string) *Model {
	return &Model{
		ctx:        ctx,
		view:       DashboardView,
		userID:     userID,
		store:      store,
		table:      table,
		engine:     engine,
		bands:      bands,
		importPath: importPath,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by loading the stored collection.
func (m *Model) Init() tea.Cmd {
	return m.loadCollection()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logList.SetSize(msg.Width-4, msg.Height-8)
		m.needList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case LogView, NeedListView:
			return m.handleListKeys(msg)
		case ReportView:
			return m.handleReportKeys(msg)
		}

	case collectionLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.setCollection(msg.collection)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case importCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ReportView
		m.progressChan = nil
		if msg.err == nil && msg.result != nil {
			m.setCollection(msg.result.Collection)
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ReportView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case DashboardView:
		return m.renderDashboard()
	case LogView:
		return fmt.Sprintf("%s\n\n%s", m.logList.View(), m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
	case NeedListView:
		return fmt.Sprintf("%s\n\n%s", m.needList.View(), m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))
	case ImportView:
		return m.renderImport()
	case ReportView:
		return m.renderReport()
	default:
		return ""
	}
}

func (m *Model) setCollection(collection models.Collection) {
	m.collection = collection
	m.dashboard = stats.BuildDashboard(collection, m.table)

	logItems := make([]list.Item, len(collection))
	for i, qso := range collection {
		logItems[i] = qsoItem{qso: qso}
	}
	m.logList = list.New(logItems, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.logList.Title = fmt.Sprintf("Logbook: %s", m.userID)

	rows := stats.FilterNeeded(stats.BuildNeedList(collection, m.table, m.bands))
	needItems := make([]list.Item, len(rows))
	for i, row := range rows {
		needItems[i] = needItem{row: row}
	}
	m.needList = list.New(needItems, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.needList.Title = "Needed Entities"
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "l":
		m.view = LogView
		return m, nil
	case "n":
		m.view = NeedListView
		return m, nil
	case "i":
		if m.importPath != "" {
			m.view = ImportView
			return m, m.startImport()
		}
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		// q only quits when the list filter is idle
		if m.activeList().FilterState() == list.Filtering {
			break
		}
		m.view = DashboardView
		return m, nil
	}
	return m.updateLists(msg)
}

func (m *Model) handleReportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.view = DashboardView
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) activeList() *list.Model {
	if m.view == NeedListView {
		return &m.needList
	}
	return &m.logList
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LogView:
		m.logList, cmd = m.logList.Update(msg)
	case NeedListView:
		m.needList, cmd = m.needList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadCollection() tea.Cmd {
	return func() tea.Msg {
		collection, err := m.store.LoadCollection(m.userID)
		if errors.Is(err, shared.ErrCollectionNotFound) {
			collection, err = models.Collection{}, nil
		}
		return collectionLoadedMsg{collection: collection, err: err}
	}
}

func (m *Model) startImport() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		raw, err := os.ReadFile(m.importPath)
		if err != nil {
			m.result, m.err = nil, err
			close(progress)
			return
		}
		result, err := m.engine.ImportFile(m.ctx, m.userID, raw, progress)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return importCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return importCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderDashboard() string {
	title := styles.title.Render(fmt.Sprintf("DXCC Progress: %s", m.userID))

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.box.Render(fmt.Sprintf("Worked\n%s", styles.ok.Render(fmt.Sprintf("%d / %d", m.dashboard.WorkedEntities, m.dashboard.ActiveEntities)))),
		styles.box.Render(fmt.Sprintf("Confirmed\n%s", styles.ok.Render(fmt.Sprintf("%d", m.dashboard.Confirmed)))),
		styles.box.Render(fmt.Sprintf("Requested\n%s", styles.warn.Render(fmt.Sprintf("%d", m.dashboard.Requested)))),
		styles.box.Render(fmt.Sprintf("Needed\n%s", styles.err.Render(fmt.Sprintf("%d", m.dashboard.Needed)))),
	)

	info := fmt.Sprintf("\n%d QSOs logged", m.dashboard.TotalQSOs)
	if m.dashboard.UnresolvedQSOs > 0 {
		info += styles.warn.Render(fmt.Sprintf("  (%d unresolved)", m.dashboard.UnresolvedQSOs))
	}

	helpKeys := []key.Binding{m.keys.log, m.keys.needs, m.keys.quit}
	if m.importPath != "" {
		helpKeys = append([]key.Binding{m.keys.runImport}, helpKeys...)
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, boxes, info, helpView)
}

func (m *Model) renderImport() string {
	title := styles.title.Render("Importing ADIF File")

	var phase string
	switch m.progress.Phase {
	case tasks.ParseFile:
		phase = "Parsing file..."
	case tasks.MapRecords:
		phase = fmt.Sprintf("Mapping records (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Reconcile:
		phase = "Reconciling against logbook..."
	case tasks.SaveCollection:
		phase = "Saving collection..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderReport() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Import failed: %v\n\nPress esc to go back, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress esc to go back, q to quit")
	}

	title := styles.ok.Render("✓ Import Complete")
	report := m.result.Report
	info := fmt.Sprintf(
		"\nInserted: %d\nQSL updated: %d\nDuplicates skipped: %d\nUnmappable skipped: %d",
		report.Inserted,
		report.UpdatedQSLOnly,
		report.SkippedDuplicate,
		report.SkippedUnmappable,
	)

	var unresolved string
	if len(m.result.Unresolved) > 0 {
		unresolved = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("%d QSOs without a DXCC entity:", len(m.result.Unresolved))))
		for _, qso := range m.result.Unresolved {
			unresolved += fmt.Sprintf("\n  • %s on %s", qso.Callsign, qso.DateString())
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, unresolved, helpView)
}
