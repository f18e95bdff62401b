package cart

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"go-storefront-api/internal/product"
	"go-storefront-api/internal/shared/database/helper"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Detail(ctx context.Context, token string) (View, error)
	AddItem(ctx context.Context, token string, req AddItemRequest) (View, error)
	UpdateQuantity(ctx context.Context, token, productID string, req UpdateQuantityRequest) (View, error)
	RemoveItem(ctx context.Context, token, productID string, variant *string) (View, error)
	Clear(ctx context.Context, token string) error
	// ClearIfUnchanged clears only when the ledger still has the given
	// fingerprint and reports whether it did.
	ClearIfUnchanged(ctx context.Context, token, fingerprint string) (bool, error)
}

// ProductLookup supplies the catalog snapshot taken on add.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

const lockStripes = 64

type service struct {
	store    Store
	products ProductLookup
	validate *validator.Validate
	logger   *zap.Logger
	locks    [lockStripes]sync.Mutex
}

func NewService(store Store, products ProductLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("cart.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.service")
	}
	return &service{
		store:    store,
		products: products,
		validate: validator.New(),
		logger:   l,
	}
}

// ========================
// helpers
// ========================

// lock serializes ledger mutations for one token inside this process.
func (s *service) lock(token string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	m := &s.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

func (s *service) open(ctx context.Context, token string) (*Ledger, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrInvalidCartToken
	}
	l, err := NewLedger(ctx, s.store, StorageKey(token))
	if err != nil {
		s.logger.Error("load cart failed", zap.String("cart_token", token), zap.Error(err))
		return nil, err
	}
	return l, nil
}

func (s *service) snapshot(ctx context.Context, req AddItemRequest) (LineItem, error) {
	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return LineItem{}, ErrProductUnavailable
		}
		return LineItem{}, err
	}

	price, stock := p.Price, p.Stock
	if req.Variant != "" {
		opt, ok := p.FindOption(req.Variant)
		if !ok {
			return LineItem{}, ErrVariantNotFound.Withf("Variant %q not found for %s", req.Variant, p.Name)
		}
		price += opt.PriceModifier
		stock = opt.Stock
	}

	if stock <= 0 {
		return LineItem{}, ErrOutOfStock
	}

	return LineItem{
		ProductID: p.ID,
		Variant:   VariantOf(req.Variant),
		Name:      p.Name,
		UnitPrice: helper.Float64ToDecimalExact(price),
		ImageRef:  p.PrimaryImage(),
		Slug:      p.Slug,
		Stock:     stock,
	}, nil
}

func mapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Quantity":
				return ErrInvalidQuantity
			case "ProductID":
				return ErrProductIDRequired
			}
		}
	}
	return ErrInvalidQuantity.WithMessage(err.Error())
}

// ========================
// operations
// ========================

func (s *service) Detail(ctx context.Context, token string) (View, error) {
	l, err := s.open(ctx, token)
	if err != nil {
		return View{}, err
	}
	return newView(l.Items()), nil
}

func (s *service) AddItem(ctx context.Context, token string, req AddItemRequest) (View, error) {
	if err := s.validate.Struct(req); err != nil {
		return View{}, mapValidationError(err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := s.snapshot(ctx, req)
	if err != nil {
		return View{}, err
	}

	unlock := s.lock(token)
	defer unlock()

	l, err := s.open(ctx, token)
	if err != nil {
		return View{}, err
	}
	if err := l.AddItem(ctx, item, req.Quantity); err != nil {
		s.logger.Warn("add cart item failed",
			zap.String("cart_token", token),
			zap.String("product_id", req.ProductID),
			zap.Error(err),
		)
		return View{}, err
	}
	return newView(l.Items()), nil
}

func (s *service) UpdateQuantity(ctx context.Context, token, productID string, req UpdateQuantityRequest) (View, error) {
	unlock := s.lock(token)
	defer unlock()

	l, err := s.open(ctx, token)
	if err != nil {
		return View{}, err
	}
	if err := l.UpdateQuantity(ctx, productID, VariantOf(req.Variant), req.Quantity); err != nil {
		return View{}, err
	}
	return newView(l.Items()), nil
}

func (s *service) RemoveItem(ctx context.Context, token, productID string, variant *string) (View, error) {
	unlock := s.lock(token)
	defer unlock()

	l, err := s.open(ctx, token)
	if err != nil {
		return View{}, err
	}
	if err := l.RemoveItem(ctx, productID, variant); err != nil {
		return View{}, err
	}
	return newView(l.Items()), nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	unlock := s.lock(token)
	defer unlock()

	l, err := s.open(ctx, token)
	if err != nil {
		return err
	}
	return l.Clear(ctx)
}

func (s *service) ClearIfUnchanged(ctx context.Context, token, fingerprint string) (bool, error) {
	unlock := s.lock(token)
	defer unlock()

	l, err := s.open(ctx, token)
	if err != nil {
		return false, err
	}
	if fingerprint == "" || Fingerprint(l.Items()) != fingerprint {
		return false, nil
	}
	if err := l.Clear(ctx); err != nil {
		return false, err
	}
	return true, nil
}
