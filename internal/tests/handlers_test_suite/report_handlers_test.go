package handlers_test_suite

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestGetReportHandler_JSON(t *testing.T) {
	r := newRouter()

	tests := []struct {
		path         string
		expectedRows int
		hasChart     bool
	}{
		{"/reports/stock-level", 4, true},
		{"/reports/stock-level?category=Electronics", 2, true},
		{"/reports/valuation", 4, true},
		{"/reports/low-stock", 2, false},
		{"/reports/movement", 8, true},
		{"/reports/movement?movementType=out&productId=1", 1, true},
		{"/reports/supplier-performance", 3, false},
		{"/reports/supplier-performance?supplierId=2", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := authed(r, http.MethodGet, tt.path, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
			}
			report, err := decode[models.InventoryReport](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if len(report.Data) != tt.expectedRows {
				t.Errorf("expected %d rows, got %d", tt.expectedRows, len(report.Data))
			}
			if (report.ChartData != nil) != tt.hasChart {
				t.Errorf("expected chart %v, got %v", tt.hasChart, report.ChartData != nil)
			}
			if report.ID == "" || report.GeneratedBy != "admin" {
				t.Errorf("expected an id and admin as author, got %q and %q", report.ID, report.GeneratedBy)
			}
		})
	}
}

func TestGetReportHandler_DateOnlyEndCoversTheDay(t *testing.T) {
	r := newRouter()
	moveStock(r, 3, handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: 5, Reason: "Restock"})

	today := time.Now().UTC().Format(time.DateOnly)
	w := authed(r, http.MethodGet, "/reports/movement?to="+today, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	report, _ := decode[models.InventoryReport](w)
	if len(report.Data) != 9 {
		t.Errorf("expected the eight sample movements and today's restock, got %d rows", len(report.Data))
	}
}

func TestGetReportHandler_LowStockShortage(t *testing.T) {
	r := newRouter()

	w := authed(r, http.MethodGet, "/reports/low-stock", nil)
	report, _ := decode[models.InventoryReport](w)
	for _, row := range report.Data {
		if row["name"] == "Printer Paper A4" && row["shortage"] != float64(10) {
			t.Errorf("expected a shortage of 10 reams, got %v", row["shortage"])
		}
	}
}

func TestGetReportHandler_CSV(t *testing.T) {
	r := newRouter()

	w := authed(r, http.MethodGet, "/reports/stock-level?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "stock-level-report-") || !strings.HasSuffix(cd, `.csv"`) {
		t.Errorf("unexpected Content-Disposition %s", cd)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 5 || records[0][0] != "name" {
		t.Fatalf("expected header plus 4 products, got %v", records)
	}
	if records[3][6] != models.StockStatusOut {
		t.Errorf("expected paper out of stock, got %s", records[3][6])
	}
}

func TestGetReportHandler_XLSX(t *testing.T) {
	r := newRouter()

	w := authed(r, http.MethodGet, "/reports/valuation?format=xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("expected an xlsx content type, got %s", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("invalid workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	title, _ := f.GetCellValue(sheet, "A1")
	if title != "VALUATION Report" {
		t.Errorf("expected title VALUATION Report, got %q", title)
	}
	header, _ := f.GetCellValue(sheet, "A3")
	if header != "name" {
		t.Errorf("expected header row at A3, got %q", header)
	}
	first, _ := f.GetCellValue(sheet, "A4")
	if first != "Laptop Dell Inspiron 15" {
		t.Errorf("expected the laptop on the first data row, got %q", first)
	}
}

func TestGetReportHandler_Invalid(t *testing.T) {
	r := newRouter()

	tests := []struct {
		path         string
		expectedCode int
	}{
		{"/reports/forecast", http.StatusBadRequest},
		{"/reports/stock-level?format=pdf", http.StatusBadRequest},
		{"/reports/movement?from=yesterday", http.StatusBadRequest},
		{"/reports/movement?to=2025-13-01", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if w := authed(r, http.MethodGet, tt.path, nil); w.Code != tt.expectedCode {
				t.Errorf("expected %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}
