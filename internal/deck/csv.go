package deck

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// parseTable reads a comma-separated table with a header row. The header must
// name every column in required; each row must have one value per column.
func parseTable(r io.Reader, required ...string) (*Deck, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, record)
	}

	d, err := New(header, rows...)
	if err != nil {
		return nil, err
	}
	for _, col := range required {
		if !d.HasColumn(col) {
			return nil, fmt.Errorf("missing column %q in header %q", col, header)
		}
	}
	return d, nil
}

// readTable loads and validates the table at path. Every failure is a *DataError.
func readTable(path string, required ...string) (*Deck, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &DataError{Path: path, Err: err}
	}
	d, err := parseTable(bytes.NewReader(raw), required...)
	if err != nil {
		return nil, nil, &DataError{Path: path, Err: err}
	}
	return d, raw, nil
}

// writeTable overwrites path with the deck's header and rows. There is no
// temp-file rename: a crash mid-write can leave a truncated file.
func writeTable(path string, d *Deck) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(d.records()); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}
