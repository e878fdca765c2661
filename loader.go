package publigo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// tableLoader abstracts tabular data parsing to allow different sources.
type tableLoader interface {
	Load(data []byte, filename string) (*Table, error)
}

// dataLoader parses CSV by default and XLSX when the uploaded data file
// carries a spreadsheet extension.
type dataLoader struct{}

// Compile-time interface check
var _ tableLoader = (*dataLoader)(nil)

func (l *dataLoader) Load(data []byte, filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(data)
	}
	return loadCSV(data)
}

// loadCSV parses comma-delimited UTF-8 data. The first record is the
// header; every cell is whitespace-trimmed; blank lines are skipped.
// Records shorter than the header leave the missing fields empty.
func loadCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows tolerated, validated against header below
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrDataEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataFormat, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Header: header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading record: %v", ErrDataFormat, err)
		}
		if row, ok := recordToRow(header, record); ok {
			table.Rows = append(table.Rows, row)
		}
	}

	if len(table.Rows) == 0 {
		return nil, ErrDataEmpty
	}
	return table, nil
}

// loadXLSX parses the first sheet of a spreadsheet: first row is the
// header, remaining rows are records, same trimming rules as CSV.
func loadXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: opening spreadsheet: %v", ErrDataFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrDataEmpty
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrDataFormat, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrDataEmpty
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Header: header}
	for _, record := range rows[1:] {
		if row, ok := recordToRow(header, record); ok {
			table.Rows = append(table.Rows, row)
		}
	}

	if len(table.Rows) == 0 {
		return nil, ErrDataEmpty
	}
	return table, nil
}

// recordToRow maps one record onto the header. Returns false for records
// whose cells are all empty (blank spreadsheet rows survive GetRows).
func recordToRow(header, record []string) (Row, bool) {
	row := make(Row, len(header))
	empty := true
	for i, name := range header {
		value := ""
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}
		if value != "" {
			empty = false
		}
		row[name] = value
	}
	return row, !empty
}
