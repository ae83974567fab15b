package export

import (
	"strings"
	"testing"
	"time"

	"blsexplorer/models"
)

func TestWriteCSV(t *testing.T) {
	table := models.Table{
		Columns: []string{"series_id", "year", "value"},
		Rows: [][]string{
			{"LNS14000000", "2024", "3.7"},
			{"LNS14000000", "2023", "3,5"},
		},
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "series_id,year,value" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != `LNS14000000,2023,"3,5"` {
		t.Errorf("quoted row = %q", lines[2])
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf strings.Builder
	table := models.Table{Columns: []string{"a", "b"}}
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if got := strings.TrimRight(buf.String(), "\n"); got != "a,b" {
		t.Errorf("output = %q, want header only", got)
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)
	if got := Filename(date, "CE"); got != "2025-06-01 CE.csv" {
		t.Fatalf("filename = %q, want %q", got, "2025-06-01 CE.csv")
	}
}
