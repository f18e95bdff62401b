package product

import (
	"math"
	"net/url"

	"go-storefront-api/internal/pkg/parse"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortRating    Sort = "rating"
)

const (
	PageSize          = 12
	FeaturedLimit     = 8
	SearchLimit       = 20
	CategoryListLimit = 100

	// MaxPage keeps (page-1)*PageSize within int.
	MaxPage = math.MaxInt / PageSize
)

// Sortable fields. Adapters translate them to their own column names.
const (
	FieldCreatedAt = "createdAt"
	FieldPrice     = "price"
	FieldRating    = "rating"
)

var parseSort = parse.OneOf(
	string(SortNewest),
	string(SortPriceAsc),
	string(SortPriceDesc),
	string(SortRating),
)

// QuerySpec is the validated form of the public listing parameters.
type QuerySpec struct {
	CategoryID string
	Brand      string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Featured   bool
	Sort       Sort
	Page       int
	PageSize   int
}

// ParseQuery never fails: malformed values fall back to their defaults.
func ParseQuery(params url.Values) QuerySpec {
	spec := QuerySpec{
		CategoryID: parse.OrDefault(params.Get("category"), parse.NonEmpty, ""),
		Brand:      parse.OrDefault(params.Get("brand"), parse.NonEmpty, ""),
		MinPrice:   parse.Optional(params.Get("minPrice"), parse.NonNegativeFloat),
		MaxPrice:   parse.Optional(params.Get("maxPrice"), parse.NonNegativeFloat),
		Search:     parse.OrDefault(params.Get("search"), parse.NonEmpty, ""),
		Featured:   parse.OrDefault(params.Get("featured"), parse.Bool, false),
		Sort:       Sort(parse.OrDefault(params.Get("sort"), parseSort, string(SortNewest))),
		Page:       parse.OrDefault(params.Get("page"), parse.PositiveInt, 1),
		PageSize:   PageSize,
	}

	if spec.Page > MaxPage {
		spec.Page = MaxPage
	}
	if spec.MinPrice != nil && spec.MaxPrice != nil && *spec.MinPrice > *spec.MaxPrice {
		spec.MinPrice, spec.MaxPrice = spec.MaxPrice, spec.MinPrice
	}
	return spec
}

// Filter is the store-independent predicate. Active-only is implied and
// always applied by the adapters.
type Filter struct {
	CategoryID   string
	Brand        string
	MinPrice     *float64
	MaxPrice     *float64
	Search       string
	FeaturedOnly bool
}

type SortSpec struct {
	Field      string
	Descending bool
}

type Query struct {
	Filter Filter
	Sort   SortSpec
	Skip   int
	Limit  int
}

func (q QuerySpec) Filter() Filter {
	return Filter{
		CategoryID:   q.CategoryID,
		Brand:        q.Brand,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		Search:       q.Search,
		FeaturedOnly: q.Featured,
	}
}

func (q QuerySpec) Query() Query {
	return Query{
		Filter: q.Filter(),
		Sort:   SortFor(q.Sort),
		Skip:   skipFor(q.Page, q.PageSize),
		Limit:  q.PageSize,
	}
}

// skipFor saturates at math.MaxInt instead of overflowing.
func skipFor(page, size int) int {
	if page <= 1 || size <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

// SortFor maps any unknown value to newest first.
func SortFor(s Sort) SortSpec {
	switch s {
	case SortPriceAsc:
		return SortSpec{Field: FieldPrice}
	case SortPriceDesc:
		return SortSpec{Field: FieldPrice, Descending: true}
	case SortRating:
		return SortSpec{Field: FieldRating, Descending: true}
	default:
		return SortSpec{Field: FieldCreatedAt, Descending: true}
	}
}

func newestFirst(f Filter, limit int) Query {
	return Query{Filter: f, Sort: SortFor(SortNewest), Limit: limit}
}
