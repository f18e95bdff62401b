package category

import (
	"net/http"

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
	l := zap.L().Named("category.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("category.handler")
	}
	return &Handler{service: s, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	data, err := h.service.List(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, ToResponses(data), nil)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	data, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.logger.Debug("category lookup failed", zap.String("slug", slug), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, ToResponse(data), nil)
}
