// Package export renders result tables for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"blsexplorer/models"
)

// MIMEType is the content type served with CSV downloads.
const MIMEType = "text/csv"

// WriteCSV streams the table as CSV: a header row of the columns in their
// existing order, then every data row.
func WriteCSV(w io.Writer, table models.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Filename names a download "{ISO date} {survey abbreviation}.csv".
func Filename(date time.Time, surveyAbbr string) string {
	return fmt.Sprintf("%s %s.csv", date.Format("2006-01-02"), surveyAbbr)
}
