package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/stats"
)

var (
	_ list.Item = qsoItem{}
	_ list.Item = needItem{}
)

// qsoItem wraps [models.QSO] to implement [list.Item].
type qsoItem struct {
	qso models.QSO
}

func (i qsoItem) FilterValue() string { return i.qso.Callsign + " " + i.qso.Country }
func (i qsoItem) Title() string {
	return fmt.Sprintf("%s  %s", i.qso.Callsign, i.qso.DateString())
}
func (i qsoItem) Description() string {
	desc := fmt.Sprintf("%s/%s • %s", i.qso.Band, i.qso.Mode, i.qso.Status)
	if i.qso.Country != "" {
		desc = fmt.Sprintf("%s • %s", i.qso.Country, desc)
	}
	if !i.qso.Resolved() {
		desc = fmt.Sprintf("%s • unresolved", desc)
	}
	return desc
}

// needItem wraps [stats.NeedRow] to implement [list.Item].
type needItem struct {
	row stats.NeedRow
}

func (i needItem) FilterValue() string { return i.row.Name }
func (i needItem) Title() string       { return i.row.Name }
func (i needItem) Description() string {
	if len(i.row.Bands) == 0 {
		return "never worked"
	}
	desc := fmt.Sprintf("%s on %d band(s)", i.row.Overall, len(i.row.Bands))
	return desc
}
