package checkout

import (
	"net/http"

	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/pkg/apperror"
	"go-storefront-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(svc Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("checkout.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkout.handler")
	}
	return &Handler{service: svc, logger: l}
}

// Summary returns the totals the checkout page shows.
// GET /checkout/summary
func (h *Handler) Summary(c *gin.Context) {
	res, err := h.service.Summary(c.Request.Context(), c.GetString(middleware.CartTokenKey))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// PlaceOrder
// POST /checkout
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	token := c.GetString(middleware.CartTokenKey)

	h.logger.Debug("http checkout request", zap.String("user_id", userID))

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http checkout bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.PlaceOrder(c.Request.Context(), userID, token, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("http checkout service error", zap.String("user_id", userID), zap.Error(err))
		}
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}
