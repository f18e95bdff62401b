package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-storefront-api/internal/pkg/response"
	"go-storefront-api/internal/product"

	"go.uber.org/zap"
)

const listPath = "/api/v1/products"

// Page is one page of the product listing as the API returns it.
type Page struct {
	Items      []product.ProductResponse
	Pagination response.Pagination
}

// APIError is a non-2xx reply decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success    bool                  `json:"success"`
	Data       json.RawMessage       `json:"data"`
	Pagination *response.Pagination  `json:"pagination"`
	Error      *response.ErrorDetail `json:"error"`
}

type CatalogClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewCatalogClient: httpClient nil uses a client with a 10s timeout.
func NewCatalogClient(baseURL string, httpClient *http.Client, logger ...*zap.Logger) *CatalogClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	l := zap.L().Named("storefront.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storefront.client")
	}
	return &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  l,
	}
}

// ListProducts passes params through unchanged; the server owns defaults.
func (c *CatalogClient) ListProducts(ctx context.Context, params url.Values) (Page, error) {
	endpoint := c.baseURL + listPath
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Page{}, fmt.Errorf("decode listing: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
		}
		c.logger.Warn("list products failed", zap.Int("status", resp.StatusCode), zap.String("code", apiErr.Code))
		return Page{}, apiErr
	}

	page := Page{Items: []product.ProductResponse{}}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &page.Items); err != nil {
			return Page{}, fmt.Errorf("decode products: %w", err)
		}
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}
