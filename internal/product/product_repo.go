package product

import (
	"context"

	"go-storefront-api/internal/category"
)

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	// Find applies q.Filter plus the active-only restriction. Ties on the
	// sort field are broken by id ascending so pages are stable.
	Find(ctx context.Context, q Query) ([]Product, error)
	Count(ctx context.Context, f Filter) (int64, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
}

// CategoryLookup resolves the category refs embedded in product responses.
type CategoryLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]category.Category, error)
}
