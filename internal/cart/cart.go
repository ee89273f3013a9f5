// Package cart models the shopper's basket. It has no server-side storage:
// the owner persists it through a Store (browser local storage, or memory).
package cart

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const StorageKey = "boutique_cart"

// Line is one cart entry. It doubles as the checkout item payload.
// swagger:model CartLine
type Line struct {
	ProductID       string          `json:"product_id" example:"93ee8be9-0c1f-4f4e-9a53-3f4a5e1b2c3d"`
	ProductNameEN   string          `json:"product_name_en" example:"Imperial Caftan Royale"`
	ProductNameFR   string          `json:"product_name_fr,omitempty" example:"Caftan Impérial Royal"`
	ProductSKU      string          `json:"product_sku,omitempty"`
	ProductImageURL string          `json:"product_image_url,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price" swaggertype:"number" example:"100"`
	Quantity        int             `json:"quantity" example:"2"`
	Size            string          `json:"size,omitempty" example:"M"`
	Color           string          `json:"color,omitempty" example:"Emerald"`
}

// Key identifies a line by product, size and color.
func (l Line) Key() string {
	return Key(l.ProductID, l.Size, l.Color)
}

func Key(productID, size, color string) string {
	return strings.Join([]string{productID, size, color}, "|")
}

// LineTotal is unit_price × quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	lines []Line
}

func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		c.Add(l)
	}
	return c
}

// Add merges l into an existing line with the same key, or appends it.
// Quantities below 1 count as 1.
func (c *Cart) Add(l Line) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	key := l.Key()
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity += l.Quantity
			return
		}
	}
	c.lines = append(c.lines, l)
}

// Update sets the quantity of a line; below 1 removes it.
func (c *Cart) Update(key string, qty int) {
	if qty < 1 {
		c.Remove(key)
		return
	}
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Remove(key string) {
	out := c.lines[:0]
	for _, l := range c.lines {
		if l.Key() != key {
			out = append(out, l)
		}
	}
	c.lines = out
}

func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Store is a string key/value store, shaped like browser local storage.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type MemoryStore map[string]string

func (m MemoryStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemoryStore) Set(key, value string) { m[key] = value }

func (c *Cart) Save(s Store) error {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	s.Set(StorageKey, string(b))
	return nil
}

// Load reads a cart from s. Missing or unreadable data gives an empty cart.
func Load(s Store) *Cart {
	raw, ok := s.Get(StorageKey)
	if !ok || raw == "" {
		return &Cart{}
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return &Cart{}
	}
	return &Cart{lines: lines}
}
