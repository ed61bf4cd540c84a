package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

const previewRows = 5

// Table is a decoded CSV: the header row plus one map per data row keyed by
// header. Cells and headers are trimmed.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

type CSVPreview struct {
	Headers          []string      `json:"headers"`
	SampleRows       [][]string    `json:"sample_rows"`
	SuggestedMapping ColumnMapping `json:"suggested_mapping"`
}

// cleanCSV strips a UTF-8 byte order mark and blank lines.
func cleanCSV(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cleanCSV: failed to read: %w", err)
	}

	text := strings.TrimPrefix(string(raw), "\ufeff")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// newCSVReader tolerates ragged rows; brokerage exports often end in
// free-text footers.
func newCSVReader(text string) gocsv.CSVReader {
	reader := gocsv.LazyCSVReader(strings.NewReader(text))
	if r, ok := reader.(*csv.Reader); ok {
		r.FieldsPerRecord = -1
	}

	return reader
}

func ReadCSV(r io.Reader) (*Table, error) {
	text, err := cleanCSV(r)
	if err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}

	reader := newCSVReader(text)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ReadCSV: %w", EmptyCSVErr)
	} else if err != nil {
		return nil, fmt.Errorf("ReadCSV: failed to read header: %w", err)
	}

	table := &Table{}
	for _, h := range header {
		table.Headers = append(table.Headers, strings.TrimSpace(h))
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("ReadCSV: failed to read row %d: %w", len(table.Rows)+1, err)
		}

		row := make(map[string]string, len(table.Headers))
		for i, h := range table.Headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			} else {
				row[h] = ""
			}
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func Preview(r io.Reader) (*CSVPreview, error) {
	table, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("Preview: %w", err)
	}

	preview := &CSVPreview{
		Headers:          table.Headers,
		SampleRows:       [][]string{},
		SuggestedMapping: SuggestColumnMapping(table.Headers),
	}

	for i, row := range table.Rows {
		if i >= previewRows {
			break
		}

		cells := make([]string, len(table.Headers))
		for j, h := range table.Headers {
			cells[j] = row[h]
		}

		preview.SampleRows = append(preview.SampleRows, cells)
	}

	return preview, nil
}
