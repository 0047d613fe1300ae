package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/shared"
	"github.com/tealeg/xlsx"
)

const (
	sheetName      = "QSOs"
	xlsxDateLayout = "2006-01-02"
)

// Column order of the per-user workbook. The first four match what the
// operator sees in the table view; the rest carry state needed to rebuild
// the collection losslessly.
var xlsxHeader = []string{"Country", "Callsign", "QSO Date", "QSL Status", "Band", "Mode", "Entity", "LoTW", "eQSL", "Paper"}

// XLSXStore persists one Excel workbook per user under a data directory,
// named <CALLSIGN>.xlsx.
type XLSXStore struct {
	dir string
}

// NewXLSXStore creates a store rooted at the given directory.
func NewXLSXStore(dir string) *XLSXStore {
	return &XLSXStore{dir: dir}
}

// Path returns the workbook location for a user.
func (s *XLSXStore) Path(userID string) string {
	return filepath.Join(s.dir, strings.ToUpper(strings.TrimSpace(userID))+".xlsx")
}

// LoadCollection reads the user's workbook back into a collection.
func (s *XLSXStore) LoadCollection(userID string) (models.Collection, error) {
	path := s.Path(userID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", shared.ErrCollectionNotFound, userID)
	}

	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorageRead, err)
	}
	if len(file.Sheets) == 0 {
		return models.Collection{}, nil
	}

	var collection models.Collection
	for i, row := range file.Sheets[0].Rows {
		if i == 0 {
			continue // header
		}
		qso, ok := rowToQSO(row)
		if ok {
			collection = append(collection, qso)
		}
	}

	return collection, nil
}

// SaveCollection writes the user's entire collection as one workbook,
// replacing any previous file. The write goes to a temp file first so a
// failed save never truncates the existing workbook.
func (s *XLSXStore) SaveCollection(userID string, collection models.Collection) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().Value = h
	}

	for i := range collection {
		qsoToRow(sheet.AddRow(), &collection[i])
	}

	path := s.Path(userID)
	tmp := path + ".tmp"
	if err := file.Save(tmp); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", shared.ErrStorageWrite, err)
	}

	return nil
}

func qsoToRow(row *xlsx.Row, qso *models.QSO) {
	values := []string{
		qso.Country,
		qso.Callsign,
		qso.DateString(),
		qso.Status.String(),
		qso.Band,
		qso.Mode,
		qso.EntityID,
		qso.Flags.LoTW.String(),
		qso.Flags.EQSL.String(),
		qso.Flags.Paper.String(),
	}
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func rowToQSO(row *xlsx.Row) (models.QSO, bool) {
	cell := func(i int) string {
		if i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].Value)
		}
		return ""
	}

	qso := models.QSO{
		Country:  cell(0),
		Callsign: strings.ToUpper(cell(1)),
		Band:     cell(4),
		Mode:     cell(5),
		EntityID: cell(6),
		Status:   models.ParseQSLStatus(cell(3)),
		Flags: models.ServiceFlags{
			LoTW:  models.ParseFlag(cell(7)),
			EQSL:  models.ParseFlag(cell(8)),
			Paper: models.ParseFlag(cell(9)),
		},
	}

	if qso.Callsign == "" {
		return models.QSO{}, false // blank row
	}

	if date, err := time.Parse(xlsxDateLayout, cell(2)); err == nil {
		qso.Date = date
	}

	return qso, true
}
