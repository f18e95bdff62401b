package product

import "time"

type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId,omitempty" json:"publicId,omitempty"`
	Alt      string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type VariantOption struct {
	Value         string  `bson:"value" json:"value"`
	PriceModifier float64 `bson:"priceModifier" json:"priceModifier"`
	Stock         int     `bson:"stock" json:"stock"`
	SKU           string  `bson:"sku,omitempty" json:"sku,omitempty"`
}

type Variant struct {
	Name    string          `bson:"name" json:"name"`
	Options []VariantOption `bson:"options" json:"options"`
}

type Specification struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

// Product is a catalog record. Prices are stored as doubles in both stores
// and converted to decimals at the cart boundary.
type Product struct {
	ID                string          `bson:"_id"`
	Name              string          `bson:"name"`
	Slug              string          `bson:"slug"`
	Description       string          `bson:"description"`
	CategoryID        string          `bson:"category"`
	Brand             string          `bson:"brand,omitempty"`
	Price             float64         `bson:"price"`
	CompareAtPrice    *float64        `bson:"compareAtPrice,omitempty"`
	Images            []Image         `bson:"images"`
	Variants          []Variant       `bson:"variants"`
	Specifications    []Specification `bson:"specifications"`
	Stock             int             `bson:"stock"`
	LowStockThreshold int             `bson:"lowStockThreshold"`
	Rating            float64         `bson:"rating"`
	NumReviews        int             `bson:"numReviews"`
	IsFeatured        bool            `bson:"isFeatured"`
	IsActive          bool            `bson:"isActive"`
	Tags              []string        `bson:"tags"`
	CreatedAt         time.Time       `bson:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt"`
}

func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// FindOption looks the value up across all variant groups.
func (p Product) FindOption(value string) (VariantOption, bool) {
	for _, v := range p.Variants {
		for _, o := range v.Options {
			if o.Value == value {
				return o, true
			}
		}
	}
	return VariantOption{}, false
}

func (p Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}
