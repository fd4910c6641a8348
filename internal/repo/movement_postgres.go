package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

const movementColumns = `id, product_id, product_name, movement_type, quantity, previous_stock, new_stock,
	reason, reference, cost, user_id, user_name, created_at, notes`

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

// Log inserts a new inventory movement
func (r *PostgresMovementRepository) Log(m models.StockMovement) (models.StockMovement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return insertMovement(ctx, r.db, m)
}

func insertMovement(ctx context.Context, q rowQuerier, m models.StockMovement) (models.StockMovement, error) {
	query := `INSERT INTO movements (product_id, product_name, movement_type, quantity, previous_stock, new_stock,
		reason, reference, cost, user_id, user_name, created_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`

	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	err := q.QueryRowContext(ctx, query, m.ProductID, m.ProductName, m.MovementType, m.Quantity, m.PreviousStock,
		m.NewStock, m.Reason, m.Reference, m.Cost, m.UserID, m.UserName, m.Timestamp, m.Notes).Scan(&m.ID)
	if err != nil {
		return models.StockMovement{}, fmt.Errorf("failed to insert movement: %w", err)
	}
	return m, nil
}

const defaultLimit = 100

// List returns the movements matching the filter, newest first.
func (r *PostgresMovementRepository) List(mf MovementFilter) ([]models.StockMovement, int, error) {
	whereClause, args := r.buildWhereClause(mf)

	if mf.Offset != nil && *mf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if mf.Offset != nil && *mf.Offset >= total {
		return []models.StockMovement{}, total, nil
	}

	query, queryArgs := r.buildMainQuery(whereClause, args, mf, defaultLimit)
	movements, err := r.executeQuery(query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return movements, total, nil
}

// GetByProductID returns all movements for a specific product
func (r *PostgresMovementRepository) GetByProductID(productID int, mf MovementFilter) ([]models.StockMovement, int, error) {
	mf.ProductID = &productID
	return r.List(mf)
}

func (r *PostgresMovementRepository) Recent(n int) ([]models.StockMovement, error) {
	movements, _, err := r.List(MovementFilter{Limit: &n})
	return movements, err
}

// All returns every movement without the page cap, for aggregation.
func (r *PostgresMovementRepository) All() ([]models.StockMovement, error) {
	query, args := r.buildMainQuery("", nil, MovementFilter{}, 0)
	return r.executeQuery(query, args)
}

// buildWhereClause constructs the WHERE clause and returns arguments
func (r *PostgresMovementRepository) buildWhereClause(mf MovementFilter) (string, []any) {
	args := []any{}
	whereClause := "WHERE 1=1"
	argIndex := 1

	if mf.ProductID != nil {
		whereClause += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *mf.ProductID)
		argIndex++
	}

	if mf.Type != "" {
		whereClause += fmt.Sprintf(" AND movement_type = $%d", argIndex)
		args = append(args, mf.Type)
		argIndex++
	}

	if mf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *mf.Since)
		argIndex++
	}

	if mf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *mf.Until)
	}

	return whereClause, args
}

// buildMainQuery constructs the main SELECT query with pagination. A zero maxLimit disables the cap.
func (r *PostgresMovementRepository) buildMainQuery(whereClause string, baseArgs []any, mf MovementFilter, maxLimit int) (string, []any) {
	query := fmt.Sprintf("SELECT %s FROM movements %s ORDER BY created_at DESC, id DESC", movementColumns, whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	limit := maxLimit
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = *mf.Limit
		if maxLimit > 0 {
			limit = min(limit, maxLimit)
		}
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
	}

	if mf.Offset != nil && *mf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *mf.Offset)
	}

	return query, args
}

// getTotal executes the count query
func (r *PostgresMovementRepository) getTotal(whereClause string, args []any) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM movements %s", whereClause)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// executeQuery executes the main query and scans results
func (r *PostgresMovementRepository) executeQuery(query string, args []any) ([]models.StockMovement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.MovementType, &m.Quantity, &m.PreviousStock,
			&m.NewStock, &m.Reason, &m.Reference, &m.Cost, &m.UserID, &m.UserName, &m.Timestamp, &m.Notes); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}
