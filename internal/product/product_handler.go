package product

import (
	"net/http"

	"go-storefront-api/internal/pkg/apperror"
	"go-storefront-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	productService Service
	logger         *zap.Logger
}

func NewHandler(productService Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("product.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.handler")
	}
	return &Handler{productService: productService, logger: l}
}

// 1. GET PUBLIC LIST
func (h *Handler) List(c *gin.Context) {
	res, err := h.productService.ListProducts(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res.Items, response.NewPagination(res.TotalItems, res.Page, res.PageSize))
}

// 2. FEATURED (landing page)
func (h *Handler) Featured(c *gin.Context) {
	data, err := h.productService.GetFeatured(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, data, nil)
}

// 3. SEARCH (?q= wajib)
func (h *Handler) Search(c *gin.Context) {
	data, err := h.productService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) ListByCategory(c *gin.Context) {
	data, err := h.productService.ListByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	data, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("http product request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}
