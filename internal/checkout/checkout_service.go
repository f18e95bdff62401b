package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-storefront-api/internal/cart"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Summary(ctx context.Context, cartToken string) (cart.CartResponse, error)
	PlaceOrder(ctx context.Context, userID, cartToken string, req CheckoutRequest) (OrderResponse, error)
}

// CartReader is the slice of the cart service checkout depends on.
type CartReader interface {
	Detail(ctx context.Context, token string) (cart.View, error)
	Clear(ctx context.Context, token string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

type Deps struct {
	Carts     CartReader
	Publisher EventPublisher
	Logger    *zap.Logger
	Now       func() time.Time
}

type service struct {
	carts     CartReader
	publisher EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(deps Deps) Service {
	if deps.Carts == nil {
		panic("cart service cannot be nil")
	}
	if deps.Publisher == nil {
		panic("event publisher cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &service{
		carts:     deps.Carts,
		publisher: deps.Publisher,
		validate:  validator.New(),
		logger:    deps.Logger.Named("checkout.service"),
		now:       deps.Now,
	}
}

func (s *service) Summary(ctx context.Context, cartToken string) (cart.CartResponse, error) {
	view, err := s.carts.Detail(ctx, cartToken)
	if err != nil {
		return cart.CartResponse{}, err
	}
	return cart.ToCartResponse(view), nil
}

func (s *service) PlaceOrder(ctx context.Context, userID, cartToken string, req CheckoutRequest) (OrderResponse, error) {
	if userID == "" {
		return OrderResponse{}, ErrLoginRequired
	}
	logger := s.logger.With(zap.String("user_id", userID))

	if err := s.validate.Struct(req); err != nil {
		logger.Debug("checkout validation failed", zap.Error(err))
		return OrderResponse{}, MapValidationError(err)
	}

	view, err := s.carts.Detail(ctx, cartToken)
	if err != nil {
		logger.Error("failed to fetch cart detail", zap.Error(err))
		return OrderResponse{}, err
	}
	if len(view.Items) == 0 {
		return OrderResponse{}, ErrCartEmpty
	}

	placedAt := s.now().UTC()
	orderNumber := fmt.Sprintf("ORD-%s-%s", placedAt.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
	logger = logger.With(zap.String("order_number", orderNumber))

	res := cart.ToCartResponse(view)
	payload := OrderPlacedPayload{
		OrderNumber: orderNumber,
		UserID:      userID,
		CartToken:   cartToken,
		Items:       view.Items,
		Shipping:    req.Shipping,
		Summary:     res.Summary,
		PlacedAt:    placedAt,
	}

	if err := s.publisher.Publish(ctx, EventOrderPlaced, orderNumber, payload); err != nil {
		logger.Error("failed to publish order event", zap.Error(err))
		return OrderResponse{}, ErrOrderNotPlaced
	}

	// gagal clear tidak fatal: consumer akan mencoba lagi selama isi cart belum berubah
	if err := s.carts.Clear(ctx, cartToken); err != nil {
		logger.Warn("failed to clear cart after checkout", zap.Error(err))
		pending := CartClearPayload{
			OrderNumber: orderNumber,
			CartToken:   cartToken,
			Fingerprint: cart.Fingerprint(view.Items),
		}
		if err := s.publisher.Publish(ctx, EventCartClearPending, orderNumber, pending); err != nil {
			logger.Error("failed to publish cart clear request", zap.Error(err))
		}
	}

	logger.Info("order placed", zap.String("total", res.Summary.Total.String()))

	return OrderResponse{
		OrderNumber: orderNumber,
		Items:       res.Items,
		Summary:     res.Summary,
		PlacedAt:    placedAt,
	}, nil
}
