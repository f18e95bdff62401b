package category

import (
	"context"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (Category, error)
	GetByIDs(ctx context.Context, ids []string) ([]Category, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("category.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("category.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context) ([]Category, error) {
	out, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (Category, error) {
	if slug == "" {
		return Category{}, ErrCategoryNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

// GetByIDs de-duplicates ids before hitting the repository.
func (s *service) GetByIDs(ctx context.Context, ids []string) ([]Category, error) {
	seen := make(map[string]struct{}, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return []Category{}, nil
	}
	return s.repo.GetByIDs(ctx, uniq)
}
