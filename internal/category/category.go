package category

import (
	"context"
	"net/http"
	"time"

	"go-storefront-api/internal/pkg/apperror"
)

type Category struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description"`
	ParentID    string    `bson:"parent,omitempty"`
	Image       string    `bson:"image,omitempty"`
	IsActive    bool      `bson:"isActive"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

var ErrCategoryNotFound = apperror.New(
	apperror.CodeNotFound,
	"Category not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=category.go -destination=../mock/category/category_repo_mock.go -package=mock
type Repository interface {
	// ListActive returns active categories ordered by name.
	ListActive(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (Category, error)
	GetByIDs(ctx context.Context, ids []string) ([]Category, error)
}
