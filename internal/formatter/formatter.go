// package formatter provides functions to export logbook data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/stats"
)

// ExportToCSV converts a collection to CSV format with columns: Callsign, Date, Country, Entity, Band, Mode, Status, LoTW, eQSL, Paper
func ExportToCSV(collection models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Callsign", "Date", "Country", "Entity", "Band", "Mode", "Status", "LoTW", "eQSL", "Paper"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, qso := range collection {
		record := []string{
			qso.Callsign,
			qso.DateString(),
			qso.Country,
			qso.EntityID,
			qso.Band,
			qso.Mode,
			qso.Status.String(),
			qso.Flags.LoTW.String(),
			qso.Flags.EQSL.String(),
			qso.Flags.Paper.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CollectionToText renders a collection as an aligned plain-text table.
func CollectionToText(collection models.Collection) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "CALLSIGN\tDATE\tCOUNTRY\tBAND\tMODE\tSTATUS")
	for _, qso := range collection {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			qso.Callsign, qso.DateString(), qso.Country, qso.Band, qso.Mode, qso.Status)
	}
	w.Flush()

	return buf.Bytes()
}

// NeedListToText renders a need list with one column per tracked band.
func NeedListToText(rows []stats.NeedRow, bands []string) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	fmt.Fprint(w, "ENTITY\tOVERALL")
	for _, band := range bands {
		fmt.Fprintf(w, "\t%s", band)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s", row.Name, row.Overall)
		for _, band := range bands {
			if status, ok := row.Bands[band]; ok {
				fmt.Fprintf(w, "\t%s", status)
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	return buf.Bytes()
}

// DashboardToText renders a dashboard summary as labelled lines.
func DashboardToText(dash stats.Dashboard) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("QSOs logged:        %d\n", dash.TotalQSOs))
	buf.WriteString(fmt.Sprintf("Entities worked:    %d / %d\n", dash.WorkedEntities, dash.ActiveEntities))
	buf.WriteString(fmt.Sprintf("Confirmed:          %d\n", dash.Confirmed))
	buf.WriteString(fmt.Sprintf("QSL requested:      %d\n", dash.Requested))
	buf.WriteString(fmt.Sprintf("Still needed:       %d\n", dash.Needed))
	if dash.UnresolvedQSOs > 0 {
		buf.WriteString(fmt.Sprintf("Unresolved QSOs:    %d\n", dash.UnresolvedQSOs))
	}
	if dash.DeletedEntities > 0 {
		buf.WriteString(fmt.Sprintf("Deleted entities:   %d\n", dash.DeletedEntities))
	}

	return buf.Bytes()
}

// ReportToText renders a merge report after an import.
func ReportToText(report models.MergeReport) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Inserted:        %d\n", report.Inserted))
	buf.WriteString(fmt.Sprintf("QSL updated:     %d\n", report.UpdatedQSLOnly))
	buf.WriteString(fmt.Sprintf("Duplicates:      %d\n", report.SkippedDuplicate))
	buf.WriteString(fmt.Sprintf("Unmappable:      %d\n", report.SkippedUnmappable))
	buf.WriteString(fmt.Sprintf("Total processed: %d\n", report.Total()))

	return buf.Bytes()
}

// ReportToMarkdown renders a merge report as a Markdown section for
// pasting into logs or notes.
func ReportToMarkdown(report models.MergeReport) []byte {
	var buf bytes.Buffer

	buf.WriteString("## Import Report\n\n")
	buf.WriteString(fmt.Sprintf("- **Inserted**: %d\n", report.Inserted))
	buf.WriteString(fmt.Sprintf("- **QSL updated**: %d\n", report.UpdatedQSLOnly))
	buf.WriteString(fmt.Sprintf("- **Duplicates skipped**: %d\n", report.SkippedDuplicate))
	buf.WriteString(fmt.Sprintf("- **Unmappable skipped**: %d\n", report.SkippedUnmappable))

	return buf.Bytes()
}

// WriteCSVExport writes a collection to {base}.csv, defaulting the base
// name to "export".
func WriteCSVExport(collection models.Collection, baseFilepath string) (string, error) {
	if baseFilepath == "" {
		baseFilepath = "export"
	}

	csvData, err := ExportToCSV(collection)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	path := baseFilepath + ".csv"
	if err := os.WriteFile(path, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
