// Package sheets reads and writes score workbooks with excelize: a pre-flight
// check before a workbook is forwarded to the API, and XLSX exports of the
// ranked and validation tables.
package sheets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnreadable means the bytes are not an XLSX workbook.
	ErrUnreadable = errors.New("sheets: workbook cannot be read")
	// ErrNoData means the first worksheet has no rows below the header.
	ErrNoData = errors.New("sheets: workbook has no data rows")
)

// Summary describes an uploaded workbook.
type Summary struct {
	Sheet    string
	Header   []string
	DataRows int
}

// Preflight opens an .xlsx workbook and checks that its first worksheet
// has a header and at least one data row. Legacy .xls files cannot be
// opened by excelize and are passed through unchecked (ok=false).
func Preflight(filename string, data []byte) (Summary, bool, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xls") {
		return Summary{}, false, nil
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Summary{}, true, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return Summary{}, true, ErrNoData
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return Summary{}, true, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	s := Summary{Sheet: sheetName}
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if s.Header == nil {
			s.Header = trimAll(row)
			continue
		}
		s.DataRows++
	}
	if s.DataRows == 0 {
		return s, true, ErrNoData
	}
	return s, true, nil
}

// Table is a rectangular export: one header row and data rows.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// Write renders t as a single-sheet XLSX workbook with a bold header.
func Write(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}

	if len(t.Header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
		lastCol, _, err := excelize.SplitCellName(last)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// ContentType is the MIME type of an XLSX workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
