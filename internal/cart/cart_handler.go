package cart

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

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("cart.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.handler")
	}
	return &Handler{service: s, logger: l}
}

func (h *Handler) Detail(ctx *gin.Context) {
	token := ctx.GetString(middleware.CartTokenKey)

	view, err := h.service.Detail(ctx.Request.Context(), token)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, ToCartResponse(view), nil)
}

func (h *Handler) AddItem(ctx *gin.Context) {
	token := ctx.GetString(middleware.CartTokenKey)

	var req AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http add cart item bind failed", zap.Error(err))
		response.Error(ctx, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	view, err := h.service.AddItem(ctx.Request.Context(), token, req)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	response.Success(ctx, http.StatusCreated, ToCartResponse(view), nil)
}

func (h *Handler) UpdateQuantity(ctx *gin.Context) {
	token := ctx.GetString(middleware.CartTokenKey)
	productID := ctx.Param("productId")

	var req UpdateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	view, err := h.service.UpdateQuantity(ctx.Request.Context(), token, productID, req)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, ToCartResponse(view), nil)
}

func (h *Handler) RemoveItem(ctx *gin.Context) {
	token := ctx.GetString(middleware.CartTokenKey)
	productID := ctx.Param("productId")

	view, err := h.service.RemoveItem(ctx.Request.Context(), token, productID, VariantOf(ctx.Query("variant")))
	if err != nil {
		h.fail(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, ToCartResponse(view), nil)
}

func (h *Handler) Clear(ctx *gin.Context) {
	token := ctx.GetString(middleware.CartTokenKey)

	if err := h.service.Clear(ctx.Request.Context(), token); err != nil {
		h.fail(ctx, err)
		return
	}
	response.Success(ctx, http.StatusOK, ToCartResponse(newView(nil)), nil)
}

func (h *Handler) fail(ctx *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("http cart request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(ctx, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}
