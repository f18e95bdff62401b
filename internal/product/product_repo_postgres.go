package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-storefront-api/internal/shared/database/helper"

	"github.com/lib/pq"
)

const productColumns = `id, name, slug, description, category_id, COALESCE(brand, ''), price, compare_at_price,
	images, variants, specifications, stock, low_stock_threshold, rating, num_reviews,
	is_featured, is_active, tags, created_at, updated_at`

const searchVector = `to_tsvector('simple', name || ' ' || description || ' ' || COALESCE(brand, ''))`

var sortColumns = map[string]string{
	FieldCreatedAt: "created_at",
	FieldPrice:     "price",
	FieldRating:    "rating",
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Find(ctx context.Context, q Query) ([]Product, error) {
	where, args := whereClause(q.Filter)

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where + ` ORDER BY ` + orderClause(q.Sort)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Count(ctx context.Context, f Filter) (int64, error) {
	where, args := whereClause(f)

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return r.getOne(ctx, `slug = $1`, slug)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, cond string, arg any) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+cond+` AND is_active = TRUE`, arg)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func whereClause(f Filter) (string, []any) {
	conds := []string{"is_active = TRUE"}
	var args []any

	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.Brand != "" {
		add("brand = $%d", f.Brand)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Search != "" {
		add(searchVector+" @@ plainto_tsquery('simple', $%d)", f.Search)
	}
	if f.FeaturedOnly {
		conds = append(conds, "is_featured = TRUE")
	}

	return strings.Join(conds, " AND "), args
}

func orderClause(s SortSpec) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (Product, error) {
	var (
		p              Product
		compareAt      sql.NullFloat64
		images         []byte
		variants       []byte
		specifications []byte
	)

	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.CategoryID,
		&p.Brand,
		&p.Price,
		&compareAt,
		&images,
		&variants,
		&specifications,
		&p.Stock,
		&p.LowStockThreshold,
		&p.Rating,
		&p.NumReviews,
		&p.IsFeatured,
		&p.IsActive,
		pq.Array(&p.Tags),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("scan product: %w", err)
	}

	p.CompareAtPrice = helper.NullFloat64ToPtr(compareAt)

	if err := unmarshalJSONB(images, &p.Images); err != nil {
		return Product{}, fmt.Errorf("decode images: %w", err)
	}
	if err := unmarshalJSONB(variants, &p.Variants); err != nil {
		return Product{}, fmt.Errorf("decode variants: %w", err)
	}
	if err := unmarshalJSONB(specifications, &p.Specifications); err != nil {
		return Product{}, fmt.Errorf("decode specifications: %w", err)
	}
	return p, nil
}

func unmarshalJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
