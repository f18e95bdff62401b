package product

import "time"

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Description       string          `json:"description"`
	CategoryID        string          `json:"categoryId"`
	Category          *CategoryRef    `json:"category,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	Price             float64         `json:"price"`
	CompareAtPrice    *float64        `json:"compareAtPrice,omitempty"`
	Images            []Image         `json:"images"`
	Variants          []Variant       `json:"variants"`
	Specifications    []Specification `json:"specifications"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	LowStock          bool            `json:"lowStock"`
	Rating            float64         `json:"rating"`
	NumReviews        int             `json:"numReviews"`
	IsFeatured        bool            `json:"isFeatured"`
	Tags              []string        `json:"tags"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// PagedResult is one page of a listing. Items are already mapped for output.
type PagedResult struct {
	Items      []ProductResponse
	TotalItems int64
	Page       int
	PageSize   int
}

// TotalPages is 0 for an empty result.
func (r PagedResult) TotalPages() int {
	if r.TotalItems <= 0 || r.PageSize <= 0 {
		return 0
	}
	return int((r.TotalItems + int64(r.PageSize) - 1) / int64(r.PageSize))
}

func ToResponse(p Product, ref *CategoryRef) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		Category:          ref,
		Brand:             p.Brand,
		Price:             p.Price,
		CompareAtPrice:    p.CompareAtPrice,
		Images:            nonNil(p.Images),
		Variants:          nonNil(p.Variants),
		Specifications:    nonNil(p.Specifications),
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		Rating:            p.Rating,
		NumReviews:        p.NumReviews,
		IsFeatured:        p.IsFeatured,
		Tags:              nonNil(p.Tags),
		CreatedAt:         p.CreatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
