package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func reportFilter(w http.ResponseWriter, r *http.Request) (models.ReportFilter, bool) {
	q := r.URL.Query()
	var f models.ReportFilter

	from, err := parseTimeParam(q.Get("from"))
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return f, false
	}
	to, err := parseEndTimeParam(q.Get("to"))
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return f, false
	}
	f.StartDate, f.EndDate = from, to

	if id := parseIntPtr(q.Get("productId")); id != nil {
		f.ProductID = *id
	}
	if id := parseIntPtr(q.Get("supplierId")); id != nil {
		f.SupplierID = *id
	}
	f.MovementType = q.Get("movementType")
	f.Category = q.Get("category")
	f.Status = q.Get("status")
	return f, true
}

// GetReportHandler godoc
// @Summary Generate an inventory report
// @Description Types: stock-level, movement, valuation, low-stock, supplier-performance.
// @Tags reports
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type path string true "Report type"
// @Param format query string false "json (default), csv or xlsx"
// @Param from query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Param productId query int false "Product ID"
// @Param supplierId query int false "Supplier ID"
// @Param movementType query string false "in, out or adjustment"
// @Param category query string false "Product category"
// @Param status query string false "Product status"
// @Success 200 {object} models.InventoryReport
// @Failure 400 {string} string "Unknown report type or format"
// @Router /reports/{type} [get]
// @Security BearerAuth
func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" && format != "xlsx" {
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	filter, ok := reportFilter(w, r)
	if !ok {
		return
	}

	in, ok := withInput(w)
	if !ok {
		return
	}

	reportType := chi.URLParam(r, "type")
	report, err := reports.Generate(reportType, in, filter, principal(r).Username, now())
	if err != nil {
		if errors.Is(err, reports.ErrUnknownReportType) {
			http.Error(w, fmt.Sprintf("unknown report type %q", reportType), http.StatusBadRequest)
			return
		}
		log.Printf("could not generate %s report: %v", reportType, err)
		http.Error(w, "could not generate report", http.StatusInternalServerError)
		return
	}

	if format == "json" {
		respond(w, http.StatusOK, report)
		return
	}

	var (
		buf         bytes.Buffer
		contentType = "text/csv"
	)
	if format == "csv" {
		err = reports.WriteCSV(&buf, report)
	} else {
		contentType = xlsxContentType
		err = reports.WriteXLSX(&buf, report)
	}
	if err != nil {
		log.Printf("could not write %s report as %s: %v", reportType, format, err)
		http.Error(w, "could not generate report", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s-report-%s.%s", reportType, report.GeneratedAt.Format("2006-01-02"), format)
	attachment(w, contentType, filename)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write %s response: %v", format, err)
	}
}
