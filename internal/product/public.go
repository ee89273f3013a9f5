package product

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PublicSize storefront size option.
// swagger:model PublicSize
type PublicSize struct {
	Size            string          `json:"size"`
	Stock           int             `json:"stock"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment" swaggertype:"string"`
}

// PublicColor storefront color option.
// swagger:model PublicColor
type PublicColor struct {
	Name   string `json:"name"`
	NameEN string `json:"name_en"`
	NameFR string `json:"name_fr"`
	Hex    string `json:"hex"`
	Stock  int    `json:"stock"`
}

// PublicProduct is the flattened storefront list shape.
// swagger:model PublicProduct
type PublicProduct struct {
	ID              string              `json:"id"`
	SKU             *string             `json:"sku"`
	Name            string              `json:"name"`
	NameEN          string              `json:"name_en"`
	NameFR          string              `json:"name_fr"`
	Description     *string             `json:"description"`
	DescriptionEN   *string             `json:"description_en"`
	DescriptionFR   *string             `json:"description_fr"`
	Price           decimal.Decimal     `json:"price" swaggertype:"string"`
	OriginalPrice   decimal.NullDecimal `json:"originalPrice" swaggertype:"string"`
	IsPromotion     bool                `json:"isPromotion"`
	PromotionActive bool                `json:"promotionActive"`
	PromotionLabel  *string             `json:"promotionLabel"`
	StockQuantity   int                 `json:"stockQuantity"`
	LowStock        bool                `json:"lowStock"`
	IsFeatured      bool                `json:"isFeatured"`
	IsNew           bool                `json:"isNew"`
	Slug            string              `json:"slug" example:"93ee8be9-imperial-caftan"`
	Images          []string            `json:"images"`
	Sizes           []PublicSize        `json:"sizes"`
	Colors          []PublicColor       `json:"colors"`
	Collections     []string            `json:"collections"`
	Tags            []string            `json:"tags"`
}

// PublicImage detail image with alt texts.
// swagger:model PublicImage
type PublicImage struct {
	URL   string  `json:"url"`
	AltEN *string `json:"alt_en"`
	AltFR *string `json:"alt_fr"`
}

// PublicRef names a collection or tag on the detail page.
// swagger:model PublicRef
type PublicRef struct {
	ID     string `json:"id,omitempty"`
	Slug   string `json:"slug"`
	NameEN string `json:"name_en"`
	NameFR string `json:"name_fr"`
}

// PublicProductDetail is the single-product storefront shape.
// swagger:model PublicProductDetail
type PublicProductDetail struct {
	ID                string              `json:"id"`
	SKU               *string             `json:"sku"`
	Name              string              `json:"name"`
	NameEN            string              `json:"name_en"`
	NameFR            string              `json:"name_fr"`
	Description       *string             `json:"description"`
	DescriptionEN     *string             `json:"description_en"`
	DescriptionFR     *string             `json:"description_fr"`
	Price             decimal.Decimal     `json:"price" swaggertype:"string"`
	OriginalPrice     decimal.NullDecimal `json:"originalPrice" swaggertype:"string"`
	IsPromotion       bool                `json:"isPromotion"`
	PromotionActive   bool                `json:"promotionActive"`
	PromotionLabel    *string             `json:"promotionLabel"`
	PromotionLabelEN  *string             `json:"promotionLabel_en"`
	PromotionLabelFR  *string             `json:"promotionLabel_fr"`
	StockQuantity     int                 `json:"stockQuantity"`
	LowStock          bool                `json:"lowStock"`
	IsFeatured        bool                `json:"isFeatured"`
	IsNew             bool                `json:"isNew"`
	Slug              string              `json:"slug"`
	MetaTitleEN       *string             `json:"metaTitle_en"`
	MetaTitleFR       *string             `json:"metaTitle_fr"`
	MetaDescriptionEN *string             `json:"metaDescription_en"`
	MetaDescriptionFR *string             `json:"metaDescription_fr"`
	Images            []PublicImage       `json:"images"`
	Sizes             []PublicSize        `json:"sizes"`
	Colors            []PublicColor       `json:"colors"`
	Collections       []PublicRef         `json:"collections"`
	Tags              []PublicRef         `json:"tags"`
}

// PublicCollection storefront collection shape.
// swagger:model PublicCollection
type PublicCollection struct {
	ID                string  `json:"id"`
	Slug              string  `json:"slug"`
	Name              string  `json:"name"`
	NameEN            string  `json:"name_en"`
	NameFR            string  `json:"name_fr"`
	Description       *string `json:"description"`
	DescriptionEN     *string `json:"description_en"`
	DescriptionFR     *string `json:"description_fr"`
	Image             *string `json:"image"`
	MetaTitleEN       *string `json:"metaTitle_en"`
	MetaTitleFR       *string `json:"metaTitle_fr"`
	MetaDescriptionEN *string `json:"metaDescription_en"`
	MetaDescriptionFR *string `json:"metaDescription_fr"`
}

func sortedImages(in []Image) []Image {
	out := append([]Image(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

func publicSizes(in []Size) []PublicSize {
	s := append([]Size(nil), in...)
	sort.SliceStable(s, func(i, j int) bool { return s[i].DisplayOrder < s[j].DisplayOrder })
	out := make([]PublicSize, 0, len(s))
	for _, v := range s {
		out = append(out, PublicSize{Size: v.Size, Stock: v.StockQuantity, PriceAdjustment: v.PriceAdjustment})
	}
	return out
}

func publicColors(in []Color) []PublicColor {
	c := append([]Color(nil), in...)
	sort.SliceStable(c, func(i, j int) bool { return c[i].DisplayOrder < c[j].DisplayOrder })
	out := make([]PublicColor, 0, len(c))
	for _, v := range c {
		out = append(out, PublicColor{Name: v.NameEN, NameEN: v.NameEN, NameFR: v.NameFR, Hex: v.HexCode, Stock: v.StockQuantity})
	}
	return out
}

// Public flattens p for the storefront list.
func (p *Product) Public(now time.Time) PublicProduct {
	images := make([]string, 0, len(p.Images))
	for _, img := range sortedImages(p.Images) {
		images = append(images, img.ImageURL)
	}
	collections := make([]string, 0, len(p.Collections))
	for _, c := range p.Collections {
		if c.Slug != "" {
			collections = append(collections, c.Slug)
		}
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t.Slug != "" {
			tags = append(tags, t.Slug)
		}
	}
	return PublicProduct{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.NameEN,
		NameEN:          p.NameEN,
		NameFR:          p.NameFR,
		Description:     p.DescriptionEN,
		DescriptionEN:   p.DescriptionEN,
		DescriptionFR:   p.DescriptionFR,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		IsPromotion:     p.IsPromotion,
		PromotionActive: p.PromotionActive(now),
		PromotionLabel:  p.PromotionLabelEN,
		StockQuantity:   p.StockQuantity,
		LowStock:        p.LowStock(),
		IsFeatured:      p.IsFeatured,
		IsNew:           p.IsNew,
		Slug:            ProductSlug(p.ID, p.NameEN),
		Images:          images,
		Sizes:           publicSizes(p.Sizes),
		Colors:          publicColors(p.Colors),
		Collections:     collections,
		Tags:            tags,
	}
}

// Detail is the single-product shape, with image alt texts and named refs.
func (p *Product) Detail(now time.Time) PublicProductDetail {
	images := make([]PublicImage, 0, len(p.Images))
	for _, img := range sortedImages(p.Images) {
		images = append(images, PublicImage{URL: img.ImageURL, AltEN: img.AltTextEN, AltFR: img.AltTextFR})
	}
	collections := make([]PublicRef, 0, len(p.Collections))
	for _, c := range p.Collections {
		if c.Slug != "" {
			collections = append(collections, PublicRef{ID: c.ID, Slug: c.Slug, NameEN: c.NameEN, NameFR: c.NameFR})
		}
	}
	tags := make([]PublicRef, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t.Slug != "" {
			tags = append(tags, PublicRef{Slug: t.Slug, NameEN: t.NameEN, NameFR: t.NameFR})
		}
	}
	return PublicProductDetail{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.NameEN,
		NameEN:            p.NameEN,
		NameFR:            p.NameFR,
		Description:       p.DescriptionEN,
		DescriptionEN:     p.DescriptionEN,
		DescriptionFR:     p.DescriptionFR,
		Price:             p.Price,
		OriginalPrice:     p.OriginalPrice,
		IsPromotion:       p.IsPromotion,
		PromotionActive:   p.PromotionActive(now),
		PromotionLabel:    p.PromotionLabelEN,
		PromotionLabelEN:  p.PromotionLabelEN,
		PromotionLabelFR:  p.PromotionLabelFR,
		StockQuantity:     p.StockQuantity,
		LowStock:          p.LowStock(),
		IsFeatured:        p.IsFeatured,
		IsNew:             p.IsNew,
		Slug:              ProductSlug(p.ID, p.NameEN),
		MetaTitleEN:       p.MetaTitleEN,
		MetaTitleFR:       p.MetaTitleFR,
		MetaDescriptionEN: p.MetaDescriptionEN,
		MetaDescriptionFR: p.MetaDescriptionFR,
		Images:            images,
		Sizes:             publicSizes(p.Sizes),
		Colors:            publicColors(p.Colors),
		Collections:       collections,
		Tags:              tags,
	}
}

func (c *Collection) Public() PublicCollection {
	return PublicCollection{
		ID:                c.ID,
		Slug:              c.Slug,
		Name:              c.NameEN,
		NameEN:            c.NameEN,
		NameFR:            c.NameFR,
		Description:       c.DescriptionEN,
		DescriptionEN:     c.DescriptionEN,
		DescriptionFR:     c.DescriptionFR,
		Image:             c.ImageURL,
		MetaTitleEN:       c.MetaTitleEN,
		MetaTitleFR:       c.MetaTitleFR,
		MetaDescriptionEN: c.MetaDescriptionEN,
		MetaDescriptionFR: c.MetaDescriptionFR,
	}
}
