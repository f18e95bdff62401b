package product

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	ListProducts(ctx context.Context, params url.Values) (PagedResult, error)
	GetFeatured(ctx context.Context) ([]ProductResponse, error)
	Search(ctx context.Context, term string) ([]ProductResponse, error)
	GetBySlug(ctx context.Context, slug string) (ProductResponse, error)
	ListByCategory(ctx context.Context, categoryID string) ([]ProductResponse, error)
	GetByID(ctx context.Context, id string) (Product, error)
}

type service struct {
	repo       Repository
	categories CategoryLookup
	logger     *zap.Logger
}

// NewService accepts a nil CategoryLookup; responses then carry only categoryId.
func NewService(repo Repository, categories CategoryLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{repo: repo, categories: categories, logger: l}
}

func (s *service) ListProducts(ctx context.Context, params url.Values) (PagedResult, error) {
	spec := ParseQuery(params)
	q := spec.Query()

	var (
		items []Product
		total int64
	)

	// count dan page fetch sama-sama read-only, jalan paralel
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q.Filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("list products failed",
			zap.Int("page", spec.Page),
			zap.String("sort", string(spec.Sort)),
			zap.Error(err),
		)
		return PagedResult{}, err
	}

	return PagedResult{
		Items:      s.toResponses(ctx, items),
		TotalItems: total,
		Page:       spec.Page,
		PageSize:   spec.PageSize,
	}, nil
}

func (s *service) GetFeatured(ctx context.Context) ([]ProductResponse, error) {
	items, err := s.repo.Find(ctx, newestFirst(Filter{FeaturedOnly: true}, FeaturedLimit))
	if err != nil {
		s.logger.Error("get featured products failed", zap.Error(err))
		return nil, err
	}
	return s.toResponses(ctx, items), nil
}

func (s *service) Search(ctx context.Context, term string) ([]ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrSearchTermRequired
	}

	items, err := s.repo.Find(ctx, newestFirst(Filter{Search: term}, SearchLimit))
	if err != nil {
		s.logger.Error("search products failed", zap.String("q", term), zap.Error(err))
		return nil, err
	}
	return s.toResponses(ctx, items), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (ProductResponse, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return ProductResponse{}, err
	}
	return s.toResponses(ctx, []Product{p})[0], nil
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]ProductResponse, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, ErrInvalidCategoryID
	}

	items, err := s.repo.Find(ctx, newestFirst(Filter{CategoryID: categoryID}, CategoryListLimit))
	if err != nil {
		s.logger.Error("list products by category failed", zap.String("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	return s.toResponses(ctx, items), nil
}

func (s *service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// toResponses populates category refs. A failed lookup is logged and the
// products are returned without refs.
func (s *service) toResponses(ctx context.Context, items []Product) []ProductResponse {
	refs := s.categoryRefs(ctx, items)

	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToResponse(p, refs[p.CategoryID]))
	}
	return out
}

func (s *service) categoryRefs(ctx context.Context, items []Product) map[string]*CategoryRef {
	refs := map[string]*CategoryRef{}
	if s.categories == nil || len(items) == 0 {
		return refs
	}

	ids := make([]string, 0, len(items))
	for _, p := range items {
		if p.CategoryID != "" {
			ids = append(ids, p.CategoryID)
		}
	}
	if len(ids) == 0 {
		return refs
	}

	cats, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("category lookup failed", zap.Int("ids", len(ids)), zap.Error(err))
		return refs
	}
	for _, c := range cats {
		refs[c.ID] = &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return refs
}
