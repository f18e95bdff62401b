package seed

import (
	"strings"
	"time"

	"go-storefront-api/internal/category"
	"go-storefront-api/internal/product"

	"github.com/google/uuid"
)

// ids are derived from slugs so reseeding keeps links stable
var namespace = uuid.MustParse("6f1c2a8e-4b1d-4c3e-9a55-2f7d9b0c1e42")

func idFor(kind, slug string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+slug)).String()
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("&", "and", "/", "-", ".", "").Replace(s)
	return strings.Join(strings.Fields(s), "-")
}

type categorySeed struct {
	Name        string
	Description string
	ImageURL    string
}

type productSeed struct {
	Category  string
	Name      string
	Brand     string
	Price     float64
	Stock     int
	Rating    float64
	Featured  bool
	Tags      []string
	Variants  []product.Variant
	CompareAt float64
}

var categorySeeds = []categorySeed{
	{"Smartphone", "Perangkat telepon pintar terbaru dari berbagai brand ternama.", "https://example.com/images/categories/smartphones.jpg"},
	{"Laptop & PC", "Laptop gaming, ultrabook, dan perangkat komputer untuk produktivitas.", "https://example.com/images/categories/laptops.jpg"},
	{"Wearable Gadgets", "Smartwatch, TWS, dan perangkat wearable lainnya.", "https://example.com/images/categories/wearables.jpg"},
	{"Accessories", "Charger, kabel data, casing, dan aksesoris gadget lainnya.", "https://example.com/images/categories/accessories.jpg"},
	{"Tablet", "Tablet untuk kebutuhan desain, belajar, dan hiburan.", "https://example.com/images/categories/tablets.jpg"},
}

func storage(base float64, sizes ...string) []product.Variant {
	opts := make([]product.VariantOption, 0, len(sizes))
	for i, s := range sizes {
		opts = append(opts, product.VariantOption{Value: s, PriceModifier: base * float64(i), Stock: 10 - 3*i})
	}
	return []product.Variant{{Name: "Storage", Options: opts}}
}

func colors(values ...string) []product.Variant {
	opts := make([]product.VariantOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, product.VariantOption{Value: v, Stock: 8})
	}
	return []product.Variant{{Name: "Color", Options: opts}}
}

var productSeeds = []productSeed{
	{Category: "Smartphone", Name: "iPhone 15 Pro", Brand: "Apple", Price: 999, Stock: 25, Rating: 4.8, Featured: true, Tags: []string{"ios", "5g"}, Variants: storage(100, "128GB", "256GB", "512GB")},
	{Category: "Smartphone", Name: "Samsung S24 Ultra", Brand: "Samsung", Price: 1199, Stock: 18, Rating: 4.7, Featured: true, Tags: []string{"android", "5g"}, Variants: storage(120, "256GB", "512GB")},
	{Category: "Smartphone", Name: "Xiaomi 14", Brand: "Xiaomi", Price: 699, Stock: 4, Rating: 4.4, Tags: []string{"android"}, CompareAt: 799},
	{Category: "Laptop & PC", Name: "MacBook Pro M3", Brand: "Apple", Price: 1999, Stock: 10, Rating: 4.9, Featured: true, Tags: []string{"macos"}},
	{Category: "Laptop & PC", Name: "ASUS ROG Zephyrus", Brand: "ASUS", Price: 2199, Stock: 6, Rating: 4.6, Tags: []string{"gaming"}},
	{Category: "Laptop & PC", Name: "Lenovo Yoga Slim", Brand: "Lenovo", Price: 899, Stock: 0, Rating: 4.2, Tags: []string{"ultrabook"}},
	{Category: "Wearable Gadgets", Name: "Apple Watch Ultra 2", Brand: "Apple", Price: 799, Stock: 12, Rating: 4.8, Featured: true, Variants: colors("Natural", "Black")},
	{Category: "Wearable Gadgets", Name: "Galaxy Watch 6", Brand: "Samsung", Price: 299, Stock: 30, Rating: 4.3, CompareAt: 349},
	{Category: "Wearable Gadgets", Name: "Garmin Epix Gen 2", Brand: "Garmin", Price: 899, Stock: 3, Rating: 4.7},
	{Category: "Accessories", Name: "Keychron K2 V2", Brand: "Keychron", Price: 89, Stock: 40, Rating: 4.5, Tags: []string{"keyboard"}, Variants: colors("Red Switch", "Brown Switch")},
	{Category: "Accessories", Name: "Logitech MX Master 3S", Brand: "Logitech", Price: 99, Stock: 55, Rating: 4.8, Featured: true, Tags: []string{"mouse"}},
	{Category: "Accessories", Name: "Sony WH-1000XM5", Brand: "Sony", Price: 399, Stock: 20, Rating: 4.7, Featured: true, Tags: []string{"headphones", "anc"}, Variants: colors("Black", "Silver")},
	{Category: "Tablet", Name: "iPad Pro M2", Brand: "Apple", Price: 1099, Stock: 14, Rating: 4.8, Variants: storage(150, "128GB", "256GB")},
	{Category: "Tablet", Name: "Samsung Tab S9", Brand: "Samsung", Price: 849, Stock: 9, Rating: 4.5},
	{Category: "Tablet", Name: "Huawei MatePad Pro", Brand: "Huawei", Price: 599, Stock: 7, Rating: 4.1, CompareAt: 649},
}

// Catalog returns the sample categories and products. Products are spaced one
// hour apart so "newest" ordering is deterministic.
func Catalog(now time.Time) ([]category.Category, []product.Product) {
	categories := make([]category.Category, 0, len(categorySeeds))
	byName := make(map[string]string, len(categorySeeds))

	for _, c := range categorySeeds {
		slug := slugify(c.Name)
		id := idFor("category", slug)
		byName[c.Name] = id
		categories = append(categories, category.Category{
			ID:          id,
			Name:        c.Name,
			Slug:        slug,
			Description: c.Description,
			Image:       c.ImageURL,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	products := make([]product.Product, 0, len(productSeeds))
	for i, p := range productSeeds {
		slug := slugify(p.Name)
		created := now.Add(-time.Duration(len(productSeeds)-i) * time.Hour)

		item := product.Product{
			ID:                idFor("product", slug),
			Name:              p.Name,
			Slug:              slug,
			Description:       p.Name + " by " + p.Brand + ".",
			CategoryID:        byName[p.Category],
			Brand:             p.Brand,
			Price:             p.Price,
			Images:            []product.Image{{URL: "https://example.com/images/products/" + slug + ".jpg", Alt: p.Name}},
			Variants:          p.Variants,
			Specifications:    []product.Specification{},
			Stock:             p.Stock,
			LowStockThreshold: 5,
			Rating:            p.Rating,
			IsFeatured:        p.Featured,
			IsActive:          true,
			Tags:              p.Tags,
			CreatedAt:         created,
			UpdatedAt:         created,
		}
		if p.CompareAt > 0 {
			compareAt := p.CompareAt
			item.CompareAtPrice = &compareAt
		}
		if item.Variants == nil {
			item.Variants = []product.Variant{}
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		products = append(products, item)
	}

	return categories, products
}
