// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for award tracking:
//  1. [DashboardView] : Entity totals and confirmation progress
//  2. [LogView] : Browse and filter the QSO collection
//  3. [NeedListView] : Entities still needed, with per-band standing
//  4. [ImportView] : Monitor real-time progress during an ADIF import
//  5. [ReportView] : Display merge counts after an import finishes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the ImportEngine, providing non-blocking status reporting during imports.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
