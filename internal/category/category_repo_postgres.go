package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const categoryColumns = `id, name, slug, COALESCE(description, ''), COALESCE(parent_id, ''), COALESCE(image, ''), is_active, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1 AND is_active = TRUE`, slug)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("scan category: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []string) ([]Category, error) {
	if len(ids) == 0 {
		return []Category{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query categories by ids: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (Category, error) {
	var c Category
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.ParentID,
		&c.Image,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func scanCategories(rows *sql.Rows) ([]Category, error) {
	out := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
