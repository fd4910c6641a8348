package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	models "github.com/rogerio-castellano/inventory-console/internal/models"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/xuri/excelize/v2"
)

type importRow struct {
	Name          string  `json:"name" validate:"required,min=2"`
	SKU           string  `json:"sku" validate:"omitempty,sku"`
	Description   string  `json:"description"`
	Category      string  `json:"category" validate:"required"`
	SupplierID    int     `json:"supplier_id"`
	CostPrice     float64 `json:"cost_price" validate:"gte=0.01"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0.01"`
	CurrentStock  int     `json:"current_stock" validate:"gte=0"`
	MinStockLevel int     `json:"min_stock_level" validate:"gte=0"`
	MaxStockLevel int     `json:"max_stock_level" validate:"gte=0"`
	Unit          string  `json:"unit"`
}

var requiredImportColumns = []string{"name", "category", "cost_price", "selling_price", "current_stock"}

// readSheet returns every row of the first worksheet of an XLSX upload.
func readSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("XLSX file has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV read error: %v", err)
	}
	return records, nil
}

// parseImportRows maps records to rows by their case-insensitive header.
func parseImportRows(records [][]string) ([]importRow, error) {
	if len(records) == 0 {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range records[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredImportColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	rows := make([]importRow, 0, len(records)-1)
	for _, record := range records[1:] {
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		rows = append(rows, importRow{
			Name:          get("name"),
			SKU:           get("sku"),
			Description:   get("description"),
			Category:      get("category"),
			SupplierID:    parseInt(get("supplier_id")),
			CostPrice:     parseFloat(get("cost_price")),
			SellingPrice:  parseFloat(get("selling_price")),
			CurrentStock:  parseInt(get("current_stock")),
			MinStockLevel: parseInt(get("min_stock_level")),
			MaxStockLevel: parseInt(get("max_stock_level")),
			Unit:          get("unit"),
		})
	}
	return rows, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func rowErrors(rowNum int, errs []ValidationError) []ValidationError {
	out := make([]ValidationError, len(errs))
	for i, e := range errs {
		out[i] = ValidationError{Field: e.Field, Description: fmt.Sprintf("row %d: %s", rowNum, e.Description)}
	}
	return out
}

func findExisting(row importRow) (models.Product, bool) {
	var (
		existing models.Product
		err      error
	)
	if row.SKU != "" {
		existing, err = productRepo.GetBySKU(row.SKU)
	} else {
		existing, err = productRepo.GetByName(row.Name)
	}
	return existing, err == nil && existing.ID != 0
}

func (row importRow) apply(p models.Product) models.Product {
	p.Name = row.Name
	p.Category = row.Category
	p.CostPrice = row.CostPrice
	p.SellingPrice = row.SellingPrice
	p.CurrentStock = row.CurrentStock
	p.MinStockLevel = row.MinStockLevel
	p.MaxStockLevel = row.MaxStockLevel
	if row.Description != "" {
		p.Description = row.Description
	}
	if row.Unit != "" {
		p.Unit = row.Unit
	}
	if row.SupplierID != 0 {
		p.SupplierID = row.SupplierID
		if supplierRepo != nil {
			if s, err := supplierRepo.GetByID(row.SupplierID); err == nil {
				p.SupplierName = s.Name
			}
		}
	}
	return p
}

// ImportProductsHandler godoc
// @Summary Import products from a CSV or XLSX file
// @Description Header: name,sku,category,cost_price,selling_price,current_stock,min_stock_level,max_stock_level,unit (case-insensitive). Rows without sku get a generated one.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var records [][]string
	if strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		records, err = readSheet(file)
	} else {
		records, err = readCSV(file)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := parseImportRows(records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ValidationError{}

	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		if errs := validateStruct(row); len(errs) > 0 {
			errorsList = append(errorsList, rowErrors(rowNum, errs)...)
			continue
		}

		if existing, found := findExisting(row); found {
			if mode == "skip" {
				errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, row.Name)})
				continue
			}
			if _, err := productRepo.Update(row.apply(existing)); err != nil {
				errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, row.Name)})
				continue
			}
			imported++
			continue
		}

		if row.SKU == "" {
			sku, err := newSKU(row.Name, now())
			if err != nil {
				errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: could not generate SKU", rowNum)})
				continue
			}
			row.SKU = sku
		}
		newProduct := row.apply(models.Product{
			SKU:    row.SKU,
			Unit:   "piece",
			Status: models.ProductStatusActive,
		})
		if _, err := productRepo.Create(newProduct); err != nil {
			if errors.Is(err, repo.ErrDuplicatedValueUnique) {
				err = errors.New("SKU duplicated")
			}
			errorsList = append(errorsList, ValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	respond(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})
}
