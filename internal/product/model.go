package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status gates storefront visibility; only published products are public.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusPublished   Status = "published"
	StatusArchived    Status = "archived"
	StatusOutOfSeason Status = "out_of_season"
)

const DefaultLowStockThreshold = 5

type Product struct {
	ID            string  `json:"id"`
	SKU           *string `json:"sku"`
	NameEN        string  `json:"name_en"`
	NameFR        string  `json:"name_fr"`
	DescriptionEN *string `json:"description_en"`
	DescriptionFR *string `json:"description_fr"`
	// NUMERIC columns are read with ::text and parsed into decimal.
	Price              decimal.Decimal     `json:"price" swaggertype:"string"`
	OriginalPrice      decimal.NullDecimal `json:"original_price" swaggertype:"string"`
	IsPromotion        bool                `json:"is_promotion"`
	PromotionStartDate *string             `json:"promotion_start_date" example:"2026-10-01"`
	PromotionEndDate   *string             `json:"promotion_end_date" example:"2026-10-31"`
	PromotionLabelEN   *string             `json:"promotion_label_en"`
	PromotionLabelFR   *string             `json:"promotion_label_fr"`
	StockQuantity      int                 `json:"stock_quantity"`
	LowStockThreshold  int                 `json:"low_stock_threshold"`
	Status             Status              `json:"status"`
	IsFeatured         bool                `json:"is_featured"`
	IsNew              bool                `json:"is_new"`
	MetaTitleEN        *string             `json:"meta_title_en"`
	MetaTitleFR        *string             `json:"meta_title_fr"`
	MetaDescriptionEN  *string             `json:"meta_description_en"`
	MetaDescriptionFR  *string             `json:"meta_description_fr"`
	DisplayOrder       int                 `json:"display_order"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`

	Images []Image `json:"product_images,omitempty"`
	Sizes  []Size  `json:"product_sizes,omitempty"`
	Colors []Color `json:"product_colors,omitempty"`

	// Filled by the catalog and admin detail reads.
	Collections []Collection `json:"-"`
	Tags        []Tag        `json:"-"`

	CollectionIDs []string `json:"collection_ids,omitempty"`
	TagIDs        []string `json:"tag_ids,omitempty"`
}

type Image struct {
	ID           string  `json:"id"`
	ImageURL     string  `json:"image_url"`
	AltTextEN    *string `json:"alt_text_en"`
	AltTextFR    *string `json:"alt_text_fr"`
	DisplayOrder int     `json:"display_order"`
}

type Size struct {
	ID              string          `json:"id"`
	Size            string          `json:"size"`
	StockQuantity   int             `json:"stock_quantity"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment" swaggertype:"string"`
	DisplayOrder    int             `json:"display_order"`
}

type Color struct {
	ID            string `json:"id"`
	NameEN        string `json:"name_en"`
	NameFR        string `json:"name_fr"`
	HexCode       string `json:"hex_code"`
	StockQuantity int    `json:"stock_quantity"`
	DisplayOrder  int    `json:"display_order"`
}

type Collection struct {
	ID                string    `json:"id"`
	Slug              string    `json:"slug"`
	NameEN            string    `json:"name_en"`
	NameFR            string    `json:"name_fr"`
	DescriptionEN     *string   `json:"description_en"`
	DescriptionFR     *string   `json:"description_fr"`
	ImageURL          *string   `json:"image_url"`
	MetaTitleEN       *string   `json:"meta_title_en"`
	MetaTitleFR       *string   `json:"meta_title_fr"`
	MetaDescriptionEN *string   `json:"meta_description_en"`
	MetaDescriptionFR *string   `json:"meta_description_fr"`
	DisplayOrder      int       `json:"display_order"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	NameEN    string    `json:"name_en"`
	NameFR    string    `json:"name_fr"`
	CreatedAt time.Time `json:"created_at"`
}

// StockInfo is the slice of a product the dashboard needs.
type StockInfo struct {
	ID                string  `json:"id"`
	NameEN            string  `json:"name_en"`
	NameFR            string  `json:"name_fr"`
	SKU               *string `json:"sku"`
	Status            Status  `json:"-"`
	IsFeatured        bool    `json:"-"`
	IsNew             bool    `json:"-"`
	IsPromotion       bool    `json:"-"`
	PromotionStart    *string `json:"-"`
	PromotionEnd      *string `json:"-"`
	StockQuantity     int     `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// PublishedQuery filters the storefront list. IDs nil means no id filter.
type PublishedQuery struct {
	IDs      []string
	Featured bool
	New      bool
	Limit    int
}
