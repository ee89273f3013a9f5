package product

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImageInput product image payload.
// swagger:model ImageInput
type ImageInput struct {
	ImageURL     string  `json:"image_url" binding:"required"`
	AltTextEN    *string `json:"alt_text_en"`
	AltTextFR    *string `json:"alt_text_fr"`
	DisplayOrder int     `json:"display_order"`
}

// SizeInput product size payload.
// swagger:model SizeInput
type SizeInput struct {
	Size            string          `json:"size" binding:"required" example:"M"`
	StockQuantity   int             `json:"stock_quantity" binding:"min=0"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment" swaggertype:"string" example:"0"`
	DisplayOrder    int             `json:"display_order"`
}

// ColorInput product color payload.
// swagger:model ColorInput
type ColorInput struct {
	NameEN        string `json:"name_en" binding:"required" example:"Emerald"`
	NameFR        string `json:"name_fr" binding:"required" example:"Émeraude"`
	HexCode       string `json:"hex_code" binding:"required,hexcolor" example:"#046307"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
	DisplayOrder  int    `json:"display_order"`
}

// ProductRequest create/update payload. Children are replaced wholesale.
// swagger:model ProductRequest
type ProductRequest struct {
	SKU                *string             `json:"sku" example:"CAF-001"`
	NameEN             string              `json:"name_en" binding:"required" example:"Imperial Caftan"`
	NameFR             string              `json:"name_fr" binding:"required" example:"Caftan Impérial"`
	DescriptionEN      *string             `json:"description_en"`
	DescriptionFR      *string             `json:"description_fr"`
	Price              *decimal.Decimal    `json:"price" binding:"required" swaggertype:"string" example:"1200.00"`
	OriginalPrice      decimal.NullDecimal `json:"original_price" swaggertype:"string"`
	IsPromotion        bool                `json:"is_promotion"`
	PromotionStartDate *string             `json:"promotion_start_date" binding:"omitempty,datetime=2006-01-02" example:"2026-10-01"`
	PromotionEndDate   *string             `json:"promotion_end_date" binding:"omitempty,datetime=2006-01-02" example:"2026-10-31"`
	PromotionLabelEN   *string             `json:"promotion_label_en"`
	PromotionLabelFR   *string             `json:"promotion_label_fr"`
	StockQuantity      int                 `json:"stock_quantity" binding:"min=0"`
	LowStockThreshold  *int                `json:"low_stock_threshold" binding:"omitempty,min=0"`
	Status             Status              `json:"status" binding:"omitempty,oneof=draft published archived out_of_season"`
	IsFeatured         bool                `json:"is_featured"`
	IsNew              bool                `json:"is_new"`
	MetaTitleEN        *string             `json:"meta_title_en"`
	MetaTitleFR        *string             `json:"meta_title_fr"`
	MetaDescriptionEN  *string             `json:"meta_description_en"`
	MetaDescriptionFR  *string             `json:"meta_description_fr"`
	DisplayOrder       int                 `json:"display_order"`
	Images             []ImageInput        `json:"images" binding:"dive"`
	Sizes              []SizeInput         `json:"sizes" binding:"dive"`
	Colors             []ColorInput        `json:"colors" binding:"dive"`
	Collections        []string            `json:"collections" binding:"dive,uuid"`
	Tags               []string            `json:"tags" binding:"dive,uuid"`
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// Product builds the row for id, applying the draft status and low stock
// threshold defaults. Empty optional strings become NULL.
func (r ProductRequest) Product(id string) *Product {
	p := &Product{
		ID:                 id,
		SKU:                nonBlank(r.SKU),
		NameEN:             strings.TrimSpace(r.NameEN),
		NameFR:             strings.TrimSpace(r.NameFR),
		DescriptionEN:      nonBlank(r.DescriptionEN),
		DescriptionFR:      nonBlank(r.DescriptionFR),
		OriginalPrice:      r.OriginalPrice,
		IsPromotion:        r.IsPromotion,
		PromotionStartDate: nonBlank(r.PromotionStartDate),
		PromotionEndDate:   nonBlank(r.PromotionEndDate),
		PromotionLabelEN:   nonBlank(r.PromotionLabelEN),
		PromotionLabelFR:   nonBlank(r.PromotionLabelFR),
		StockQuantity:      r.StockQuantity,
		LowStockThreshold:  DefaultLowStockThreshold,
		Status:             r.Status,
		IsFeatured:         r.IsFeatured,
		IsNew:              r.IsNew,
		MetaTitleEN:        nonBlank(r.MetaTitleEN),
		MetaTitleFR:        nonBlank(r.MetaTitleFR),
		MetaDescriptionEN:  nonBlank(r.MetaDescriptionEN),
		MetaDescriptionFR:  nonBlank(r.MetaDescriptionFR),
		DisplayOrder:       r.DisplayOrder,
		CollectionIDs:      dedupe(r.Collections),
		TagIDs:             dedupe(r.Tags),
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.LowStockThreshold != nil {
		p.LowStockThreshold = *r.LowStockThreshold
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	for _, img := range r.Images {
		p.Images = append(p.Images, Image{ID: uuid.NewString(), ImageURL: img.ImageURL,
			AltTextEN: nonBlank(img.AltTextEN), AltTextFR: nonBlank(img.AltTextFR), DisplayOrder: img.DisplayOrder})
	}
	for _, s := range r.Sizes {
		p.Sizes = append(p.Sizes, Size{ID: uuid.NewString(), Size: s.Size, StockQuantity: s.StockQuantity,
			PriceAdjustment: s.PriceAdjustment, DisplayOrder: s.DisplayOrder})
	}
	for _, c := range r.Colors {
		p.Colors = append(p.Colors, Color{ID: uuid.NewString(), NameEN: c.NameEN, NameFR: c.NameFR,
			HexCode: c.HexCode, StockQuantity: c.StockQuantity, DisplayOrder: c.DisplayOrder})
	}
	return p
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.ToLower(id)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// CollectionRequest create/update payload. An empty slug is derived from name_en.
// swagger:model CollectionRequest
type CollectionRequest struct {
	Slug              string  `json:"slug" example:"ramadan-2026"`
	NameEN            string  `json:"name_en" binding:"required" example:"Ramadan 2026"`
	NameFR            string  `json:"name_fr" binding:"required" example:"Ramadan 2026"`
	DescriptionEN     *string `json:"description_en"`
	DescriptionFR     *string `json:"description_fr"`
	ImageURL          *string `json:"image_url"`
	MetaTitleEN       *string `json:"meta_title_en"`
	MetaTitleFR       *string `json:"meta_title_fr"`
	MetaDescriptionEN *string `json:"meta_description_en"`
	MetaDescriptionFR *string `json:"meta_description_fr"`
	DisplayOrder      int     `json:"display_order"`
	IsActive          *bool   `json:"is_active"`
}

func (r CollectionRequest) Collection(id string) *Collection {
	slug := Slugify(r.Slug)
	if slug == "" {
		slug = Slugify(r.NameEN)
	}
	c := &Collection{
		ID:                id,
		Slug:              slug,
		NameEN:            strings.TrimSpace(r.NameEN),
		NameFR:            strings.TrimSpace(r.NameFR),
		DescriptionEN:     nonBlank(r.DescriptionEN),
		DescriptionFR:     nonBlank(r.DescriptionFR),
		ImageURL:          nonBlank(r.ImageURL),
		MetaTitleEN:       nonBlank(r.MetaTitleEN),
		MetaTitleFR:       nonBlank(r.MetaTitleFR),
		MetaDescriptionEN: nonBlank(r.MetaDescriptionEN),
		MetaDescriptionFR: nonBlank(r.MetaDescriptionFR),
		DisplayOrder:      r.DisplayOrder,
		IsActive:          true,
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c
}

// CollectionPatch toggles visibility or reorders without resending the collection.
// swagger:model CollectionPatch
type CollectionPatch struct {
	IsActive     *bool `json:"is_active"`
	DisplayOrder *int  `json:"display_order"`
}

// TagRequest create/update payload.
// swagger:model TagRequest
type TagRequest struct {
	Slug   string `json:"slug" example:"silk"`
	NameEN string `json:"name_en" binding:"required" example:"Silk"`
	NameFR string `json:"name_fr" binding:"required" example:"Soie"`
}

func (r TagRequest) Tag(id string) *Tag {
	slug := Slugify(r.Slug)
	if slug == "" {
		slug = Slugify(r.NameEN)
	}
	return &Tag{ID: id, Slug: slug, NameEN: strings.TrimSpace(r.NameEN), NameFR: strings.TrimSpace(r.NameFR)}
}
