package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/xuri/excelize/v2"
)

// summedColumns get a totals row in spreadsheet exports.
var summedColumns = []string{"current_stock", "total_cost_value", "total_selling_value", "shortage", "quantity", "total_orders", "total_value"}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(t)
	}
}

// WriteCSV writes the report columns as a header followed by one line per row.
func WriteCSV(w io.Writer, report models.InventoryReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Columns); err != nil {
		return err
	}
	for _, row := range report.Data {
		record := make([]string, len(report.Columns))
		for i, col := range report.Columns {
			record[i] = cell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the report to a single sheet workbook with a title line,
// a header row, the data and a totals row.
func WriteXLSX(w io.Writer, report models.InventoryReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	title := []any{report.Title, report.GeneratedAt.Format("2006-01-02 15:04")}
	if err := f.SetSheetRow(sheet, "A1", &title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	header := make([]any, len(report.Columns))
	for i, col := range report.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 4
	for _, data := range report.Data {
		values := make([]any, len(report.Columns))
		for i, col := range report.Columns {
			values[i] = data[col]
		}
		addr, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totals := make([]any, len(report.Columns))
	hasTotals := false
	for i, col := range report.Columns {
		if slices.Contains(summedColumns, col) {
			totals[i] = Totals(report, col)
			hasTotals = true
		}
	}
	if hasTotals && len(report.Data) > 0 {
		if totals[0] == nil {
			totals[0] = "Total"
		}
		addr, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &totals); err != nil {
			return fmt.Errorf("write totals: %w", err)
		}
	}

	return f.Write(w)
}
