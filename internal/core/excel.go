package core

// excel.go is the spreadsheet-binary adapter, built on excelize.
//
// Decoding reads the first worksheet by position, whatever its name, and
// treats that sheet's first non-empty row as the header. Payloads that are
// not a well-formed workbook fail fast instead of quietly yielding zero
// rows. Encoding produces a single worksheet named "Leads".

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Leads"

type excelAdapter struct{}

func (excelAdapter) MIMEType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (excelAdapter) Ext() string { return "xlsx" }

func (excelAdapter) Decode(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
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
			if h == "" || i >= len(record) {
				continue
			}
			row.Set(h, cleanCell(record[i]))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (excelAdapter) Encode(leads []Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(exportSheetName); err != nil {
		return nil, fmt.Errorf("create worksheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default worksheet: %w", err)
	}

	header := make([]any, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, lead := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("address row %d: %w", i+2, err)
		}
		record := exportRecord(lead)
		cells := make([]any, len(record))
		for j, v := range record {
			cells[j] = v
		}
		if err := f.SetSheetRow(exportSheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
