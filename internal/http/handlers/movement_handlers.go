package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/rogerio-castellano/inventory-console/internal/telemetry"
)

const recentMovementsCount = 10

// AdjustStockHandler godoc
// @Summary Record a stock movement for a product
// @Description "in" adds, "out" subtracts without going below zero, "adjustment" sets the absolute level.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param movement body StockMovementRequest true "Stock movement"
// @Success 200 {object} StockMovementResult
// @Failure 400 {object} ValidationErrorsResult
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/stock [post]
// @Security BearerAuth
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	var req StockMovementRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	caller := principal(r)
	product, movement, err := recorder().RecordStock(models.StockMovement{
		ProductID:    id,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		Reference:    req.Reference,
		Cost:         req.Cost,
		UserID:       caller.UserID,
		UserName:     caller.Username,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInvalidQuantityChange), errors.Is(err, repo.ErrInvalidMovementType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("could not record stock movement for product %d: %v", id, err)
			http.Error(w, "could not update stock", http.StatusInternalServerError)
		}
		return
	}
	telemetry.StockMovements.WithLabelValues(req.MovementType).Inc()

	if product.IsLowStock() {
		log.Printf("⚠️ ALERT: Product %d (%s) is at or below its minimum level! Stock=%d, Minimum=%d",
			product.ID, product.Name, product.CurrentStock, product.MinStockLevel)
	}

	respond(w, http.StatusOK, StockMovementResult{
		Product:  toProductResponse(product),
		Movement: movement,
	})
}

// movementFilter reads the since, until, type, offset and limit query parameters.
func movementFilter(w http.ResponseWriter, r *http.Request) (repo.MovementFilter, bool) {
	q := r.URL.Query()

	since, err := parseTimeParam(q.Get("since"))
	if err != nil {
		log.Printf("could not parse since date %s: %v", q.Get("since"), err)
		http.Error(w, "invalid since date format", http.StatusBadRequest)
		return repo.MovementFilter{}, false
	}
	until, err := parseEndTimeParam(q.Get("until"))
	if err != nil {
		log.Printf("could not parse until date %s: %v", q.Get("until"), err)
		http.Error(w, "invalid until date format", http.StatusBadRequest)
		return repo.MovementFilter{}, false
	}

	movementType := q.Get("type")
	switch movementType {
	case "", models.MovementIn, models.MovementOut, models.MovementAdjustment:
	default:
		http.Error(w, "type must be 'in', 'out' or 'adjustment'", http.StatusBadRequest)
		return repo.MovementFilter{}, false
	}

	offset, limit, ok := pageParams(w, r)
	if !ok {
		return repo.MovementFilter{}, false
	}

	return repo.MovementFilter{
		ProductID: parseIntPtr(q.Get("productId")),
		Type:      movementType,
		Since:     since,
		Until:     until,
		Offset:    offset,
		Limit:     limit,
	}, true
}

// GetMovementsHandler godoc
// @Summary Get product movement logs
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param type query string false "in, out or adjustment"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements [get]
// @Security BearerAuth
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	filter, ok := movementFilter(w, r)
	if !ok {
		return
	}

	movements, total, err := movementRepo.GetByProductID(id, filter)
	if err != nil {
		log.Printf("could not retrieve movements for product %d: %v", id, err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, MovementsSearchResult{Data: movements, Meta: Meta{TotalCount: total}})
}

// ListMovementsHandler godoc
// @Summary List stock movements of every product
// @Tags movements
// @Produce json
// @Param productId query int false "Only movements of this product"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param type query string false "in, out or adjustment"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Router /movements [get]
// @Security BearerAuth
func ListMovementsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := movementFilter(w, r)
	if !ok {
		return
	}

	movements, total, err := movementRepo.List(filter)
	if err != nil {
		log.Printf("could not list movements: %v", err)
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, MovementsSearchResult{Data: movements, Meta: Meta{TotalCount: total}})
}

// RecentMovementsHandler godoc
// @Summary The ten newest stock movements
// @Tags movements
// @Produce json
// @Success 200 {array} models.StockMovement
// @Router /movements/recent [get]
// @Security BearerAuth
func RecentMovementsHandler(w http.ResponseWriter, r *http.Request) {
	movements, err := movementRepo.Recent(recentMovementsCount)
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, movements)
}

// ExportMovementsHandler godoc
// @Summary Export product movement logs
// @Tags movements
// @Produce text/csv, application/json
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements/export [get]
// @Security BearerAuth
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, ok := movementFilter(w, r)
	if !ok {
		return
	}
	filter.Offset, filter.Limit = nil, nil

	movements, _, err := movementRepo.GetByProductID(id, filter)
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		attachment(w, "application/json", "movements.json")
		if err := json.NewEncoder(w).Encode(movements); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}

	case "csv":
		attachment(w, "text/csv", "movements.csv")

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "movement_type", "quantity", "previous_stock", "new_stock", "reason", "user", "timestamp"})
		for _, m := range movements {
			_ = csvWriter.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ProductID),
				m.MovementType,
				strconv.Itoa(m.Quantity),
				strconv.Itoa(m.PreviousStock),
				strconv.Itoa(m.NewStock),
				m.Reason,
				m.UserName,
				m.Timestamp.Format(time.RFC3339),
			})
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			log.Printf("could not write movements CSV: %v", err)
		}
	}
}
