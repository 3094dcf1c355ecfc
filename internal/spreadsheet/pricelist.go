// Package spreadsheet reads and writes the radiology price list as xlsx.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MediBoard/MediBoard/internal/db/models"
)

const (
	// ContentType of xlsx workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Radiology"
	colWidth  = 24
)

var (
	// ErrNoSheet is returned for a workbook without sheets.
	ErrNoSheet = errors.New("workbook has no sheets")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
)

var headers = []string{"Name", "Category", "Price", "Notes", "Active"}

// RowError points at an invalid row, 1-based as shown by spreadsheet programs.
type RowError struct {
	Row int
	Msg string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

// WritePrices renders prices as a workbook with a bold header row.
func WritePrices(prices []models.RadiologyPrice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	f.SetActiveSheet(index)

	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	if err = f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err = f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for i, p := range prices {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)

		row := []any{p.Name, p.Category, p.Price, p.Notes, p.IsActive}
		if err = f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err = f.SetColWidth(sheetName, "A", lastCol, colWidth); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ReadPrices parses the first sheet. Columns are found by header name,
// case-insensitively; Name, Category and Price are required, Notes is optional.
// Blank rows are skipped.
func ReadPrices(data []byte) ([]models.RadiologyPrice, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: Name", ErrMissingColumn)
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, required := range []string{"name", "category", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	prices := []models.RadiologyPrice{}

	for i, row := range rows[1:] {
		rowNum := i + 2

		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}

			return strings.TrimSpace(row[idx])
		}

		name, category, rawPrice := get("name"), get("category"), get("price")
		if name == "" && category == "" && rawPrice == "" {
			continue
		}

		if name == "" {
			return nil, &RowError{Row: rowNum, Msg: "name is required"}
		}

		if category == "" {
			return nil, &RowError{Row: rowNum, Msg: "category is required"}
		}

		price, err := parsePrice(rawPrice)
		if err != nil {
			return nil, &RowError{Row: rowNum, Msg: "price is not a number: " + rawPrice}
		}

		prices = append(prices, models.RadiologyPrice{
			Name:     name,
			Category: category,
			Price:    price,
			Notes:    get("notes"),
		})
	}

	return prices, nil
}

// parsePrice accepts plain numbers and the "Rp 150,000" style used in price sheets.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Rp"))
	s = strings.NewReplacer(",", "", " ", "").Replace(s)

	return strconv.ParseFloat(s, 64)
}
