package core

// csv.go is the delimited-text adapter.
//
// Decoding is forgiving about the messy reality of exported CSVs: stray
// BOMs, invalid UTF-8, ragged column counts, and blank lines. The first
// non-empty record is the header; data rows shorter than the header simply
// leave the trailing fields absent, and validation decides downstream
// whether that matters.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

type csvAdapter struct{}

func (csvAdapter) MIMEType() string { return "text/csv" }
func (csvAdapter) Ext() string      { return "csv" }

func (csvAdapter) Decode(data []byte) ([]RawRow, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = sanitizeUTF8(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var header []string
	rows := make([]RawRow, 0, len(records))

	for _, record := range records {
		if isEmptyRecord(record) {
			continue
		}
		if header == nil {
			header = make([]string, len(record))
			for i, h := range record {
				header[i] = cleanCell(h)
			}
			continue
		}

		row := NewRawRow()
		for i, h := range header {
			if h == "" {
				continue
			}
			// Missing trailing cells stay absent rather than empty-set.
			if i >= len(record) {
				continue
			}
			row.Set(h, cleanCell(record[i]))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (csvAdapter) Encode(leads []Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, lead := range leads {
		if err := w.Write(exportRecord(lead)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// cleanCell strips whitespace and the ="..." formula prefix some spreadsheet
// tools emit when exporting text cells. CSV quoting itself is already undone
// by the reader, so remaining quote characters are real content.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) > 3 {
		s = s[2 : len(s)-1]
	}
	return s
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so the csv reader never chokes on mixed-encoding exports.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
