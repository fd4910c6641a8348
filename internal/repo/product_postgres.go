package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

const productColumns = `id, name, description, sku, category, supplier_id, supplier_name, cost_price, selling_price,
	current_stock, min_stock_level, max_stock_level, unit, status, image_url, barcode, location, weight,
	dim_length, dim_width, dim_height, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var length, width, height sql.NullFloat64
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Category, &p.SupplierID, &p.SupplierName,
		&p.CostPrice, &p.SellingPrice, &p.CurrentStock, &p.MinStockLevel, &p.MaxStockLevel, &p.Unit, &p.Status,
		&p.ImageURL, &p.Barcode, &p.Location, &p.Weight, &length, &width, &height, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	if length.Valid || width.Valid || height.Valid {
		p.Dimensions = &models.Dimensions{Length: length.Float64, Width: width.Float64, Height: height.Float64}
	}
	return p, nil
}

func dimensionArgs(d *models.Dimensions) (any, any, any) {
	if d == nil {
		return nil, nil, nil
	}
	return d.Length, d.Width, d.Height
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, description, sku, category, supplier_id, supplier_name, cost_price, selling_price,
		current_stock, min_stock_level, max_stock_level, unit, status, image_url, barcode, location, weight,
		dim_length, dim_width, dim_height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $21)
		RETURNING id, created_at, updated_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	length, width, height := dimensionArgs(p.Dimensions)
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.SKU, p.Category, p.SupplierID, p.SupplierName,
		p.CostPrice, p.SellingPrice, p.CurrentStock, p.MinStockLevel, p.MaxStockLevel, p.Unit, p.Status,
		p.ImageURL, p.Barcode, p.Location, p.Weight, length, width, height, time.Now().UTC()).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) query(query string, args ...any) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds an ILIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *PostgresProductRepository) queryOne(query string, args ...any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	return r.query(`SELECT ` + productColumns + ` FROM products ORDER BY id`)
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	return r.queryOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *PostgresProductRepository) GetByName(name string) (models.Product, error) {
	return r.queryOne(`SELECT `+productColumns+` FROM products WHERE lower(name) = lower($1) ORDER BY id LIMIT 1`, name)
}

func (r *PostgresProductRepository) GetBySKU(sku string) (models.Product, error) {
	return r.queryOne(`SELECT `+productColumns+` FROM products WHERE lower(sku) = lower($1)`, sku)
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, sku = $3, category = $4, supplier_id = $5, supplier_name = $6,
		cost_price = $7, selling_price = $8, current_stock = $9, min_stock_level = $10, max_stock_level = $11, unit = $12,
		status = $13, image_url = $14, barcode = $15, location = $16, weight = $17, dim_length = $18, dim_width = $19,
		dim_height = $20, updated_at = $21
		WHERE id = $22
		RETURNING ` + productColumns

	length, width, height := dimensionArgs(p.Dimensions)
	updated, err := r.queryOne(query, p.Name, p.Description, p.SKU, p.Category, p.SupplierID, p.SupplierName,
		p.CostPrice, p.SellingPrice, p.CurrentStock, p.MinStockLevel, p.MaxStockLevel, p.Unit, p.Status,
		p.ImageURL, p.Barcode, p.Location, p.Weight, length, width, height, time.Now().UTC(), p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(id int) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	return rowsAffected > 0, nil
}

func (r *PostgresProductRepository) Search(q string) ([]models.Product, error) {
	pattern := containsPattern(strings.TrimSpace(q))
	return r.query(`SELECT `+productColumns+` FROM products
		WHERE name ILIKE $1 OR sku ILIKE $1 OR category ILIKE $1 ORDER BY id`, pattern)
}

func (r *PostgresProductRepository) LowStock() ([]models.Product, error) {
	return r.query(`SELECT ` + productColumns + ` FROM products WHERE current_stock <= min_stock_level ORDER BY id`)
}

func (r *PostgresProductRepository) OutOfStock() ([]models.Product, error) {
	return r.query(`SELECT ` + productColumns + ` FROM products WHERE current_stock = 0 ORDER BY id`)
}

func (r *PostgresProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if pf.Offset != nil && *pf.Offset > totalCount {
		return []models.Product{}, totalCount, nil
	}

	column, ok := ProductSortFields[pf.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if pf.SortDesc {
		direction = "DESC"
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions
	query += fmt.Sprintf(" ORDER BY %s %s, id", column, direction)

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	products, err := r.query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to filter products: %w", err)
	}
	return products, totalCount, nil
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	add := func(clause string, arg any) {
		query += fmt.Sprintf(clause, argIdx)
		args = append(args, arg)
		argIdx++
	}

	if pf.Name != "" {
		add(" AND name ILIKE $%d", containsPattern(pf.Name))
	}
	if pf.Category != "" {
		add(" AND lower(category) = lower($%d)", pf.Category)
	}
	if pf.Status != "" {
		add(" AND status = $%d", pf.Status)
	}
	if pf.SupplierID != nil {
		add(" AND supplier_id = $%d", *pf.SupplierID)
	}
	if pf.MinPrice != nil {
		add(" AND selling_price >= $%d", *pf.MinPrice)
	}
	if pf.MaxPrice != nil {
		add(" AND selling_price <= $%d", *pf.MaxPrice)
	}
	if pf.MinQty != nil {
		add(" AND current_stock >= $%d", *pf.MinQty)
	}
	if pf.MaxQty != nil {
		add(" AND current_stock <= $%d", *pf.MaxQty)
	}
	if pf.LowStock {
		query += " AND current_stock <= min_stock_level"
	}

	return query, args, argIdx
}

// AdjustStock applies the movement in a single statement so concurrent movements cannot interleave.
func (r *PostgresProductRepository) AdjustStock(id int, movementType string, quantity int) (models.Product, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return adjustStock(ctx, r.db, id, movementType, quantity)
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// adjustStock locks the product row, applies the movement and returns the
// updated product with its previous stock.
func adjustStock(ctx context.Context, q rowQuerier, id int, movementType string, quantity int) (models.Product, int, error) {
	if _, err := nextStock(0, movementType, quantity); err != nil {
		return models.Product{}, 0, err
	}

	query := `
		WITH prev AS (SELECT id, current_stock FROM products WHERE id = $3 FOR UPDATE)
		UPDATE products p
		SET current_stock = CASE $1::text
				WHEN 'in' THEN prev.current_stock + $2
				WHEN 'out' THEN GREATEST(0, prev.current_stock - $2)
				ELSE $2
			END,
			updated_at = $4
		FROM prev
		WHERE p.id = prev.id
		RETURNING prev.current_stock, ` + prefixed("p.", productColumns)

	var previous int
	var p models.Product
	var length, width, height sql.NullFloat64
	err := q.QueryRowContext(ctx, query, movementType, quantity, id, time.Now().UTC()).
		Scan(&previous, &p.ID, &p.Name, &p.Description, &p.SKU, &p.Category, &p.SupplierID, &p.SupplierName,
			&p.CostPrice, &p.SellingPrice, &p.CurrentStock, &p.MinStockLevel, &p.MaxStockLevel, &p.Unit, &p.Status,
			&p.ImageURL, &p.Barcode, &p.Location, &p.Weight, &length, &width, &height, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, 0, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, 0, fmt.Errorf("failed to adjust stock: %w", err)
	}
	if length.Valid || width.Valid || height.Valid {
		p.Dimensions = &models.Dimensions{Length: length.Float64, Width: width.Float64, Height: height.Float64}
	}
	return p, previous, nil
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
