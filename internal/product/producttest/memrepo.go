// Package producttest provides in-memory product, collection and tag
// repositories for tests.
package producttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/boutique-ecom/internal/product"
)

type MemRepo struct {
	mu          sync.RWMutex
	products    map[string]*product.Product
	collections map[string]*product.Collection
	tags        map[string]*product.Tag
	// product id -> collection ids / tag ids
	productCols map[string][]string
	productTags map[string][]string
}

func NewMemRepo() *MemRepo {
	return &MemRepo{
		products:    map[string]*product.Product{},
		collections: map[string]*product.Collection{},
		tags:        map[string]*product.Tag{},
		productCols: map[string][]string{},
		productTags: map[string][]string{},
	}
}

// PutProduct seeds p along with its CollectionIDs and TagIDs.
func (m *MemRepo) PutProduct(p product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putProduct(&p)
}

func (m *MemRepo) putProduct(p *product.Product) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	cp := *p
	m.productCols[p.ID] = append([]string(nil), p.CollectionIDs...)
	m.productTags[p.ID] = append([]string(nil), p.TagIDs...)
	cp.CollectionIDs, cp.TagIDs, cp.Collections, cp.Tags = nil, nil, nil, nil
	m.products[p.ID] = &cp
}

func (m *MemRepo) PutCollection(c product.Collection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[c.ID] = &c
}

func (m *MemRepo) PutTag(t product.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[t.ID] = &t
}

func (m *MemRepo) withRefs(p *product.Product) product.Product {
	cp := *p
	cp.Collections, cp.Tags = nil, nil
	for _, id := range m.productCols[p.ID] {
		if c, ok := m.collections[id]; ok {
			cp.Collections = append(cp.Collections, *c)
		}
	}
	sort.SliceStable(cp.Collections, func(i, j int) bool { return cp.Collections[i].DisplayOrder < cp.Collections[j].DisplayOrder })
	for _, id := range m.productTags[p.ID] {
		if t, ok := m.tags[id]; ok {
			cp.Tags = append(cp.Tags, *t)
		}
	}
	sort.SliceStable(cp.Tags, func(i, j int) bool { return cp.Tags[i].NameEN < cp.Tags[j].NameEN })
	return cp
}

func (m *MemRepo) published() []*product.Product {
	var out []*product.Product
	for _, p := range m.products {
		if p.Status == product.StatusPublished {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemRepo) ListPublished(_ context.Context, q product.PublishedQuery) ([]product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var allowed map[string]bool
	if q.IDs != nil {
		allowed = map[string]bool{}
		for _, id := range q.IDs {
			allowed[id] = true
		}
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var out []product.Product
	for _, p := range m.published() {
		if allowed != nil && !allowed[p.ID] {
			continue
		}
		if q.Featured && !p.IsFeatured || q.New && !p.IsNew {
			continue
		}
		out = append(out, m.withRefs(p))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemRepo) GetPublished(_ context.Context, id string) (*product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok || p.Status != product.StatusPublished {
		return nil, product.ErrNotFound
	}
	cp := m.withRefs(p)
	return &cp, nil
}

func (m *MemRepo) FindPublishedByPrefix(_ context.Context, shortID string) ([]product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []product.Product
	for _, p := range m.published() {
		if strings.HasPrefix(strings.ReplaceAll(p.ID, "-", ""), strings.ToLower(shortID)) {
			out = append(out, m.withRefs(p))
		}
	}
	return out, nil
}

func (m *MemRepo) List(_ context.Context) ([]product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []product.Product
	for _, p := range m.products {
		cp := *p
		cp.Sizes, cp.Colors = nil, nil
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	cp.CollectionIDs = append([]string(nil), m.productCols[id]...)
	cp.TagIDs = append([]string(nil), m.productTags[id]...)
	return &cp, nil
}

func (m *MemRepo) Create(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putProduct(p)
	return nil
}

func (m *MemRepo) Update(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.products[p.ID]
	if !ok {
		return product.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	m.putProduct(p)
	return nil
}

func (m *MemRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return product.ErrNotFound
	}
	delete(m.products, id)
	delete(m.productCols, id)
	delete(m.productTags, id)
	return nil
}

func (m *MemRepo) StockInfo(_ context.Context) ([]product.StockInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []product.StockInfo
	for _, p := range m.products {
		out = append(out, product.StockInfo{
			ID: p.ID, NameEN: p.NameEN, NameFR: p.NameFR, SKU: p.SKU, Status: p.Status,
			IsFeatured: p.IsFeatured, IsNew: p.IsNew, IsPromotion: p.IsPromotion,
			PromotionStart: p.PromotionStartDate, PromotionEnd: p.PromotionEndDate,
			StockQuantity: p.StockQuantity, LowStockThreshold: p.LowStockThreshold,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	return out, nil
}

func (m *MemRepo) ListCollections(_ context.Context, activeOnly bool) ([]product.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []product.Collection
	for _, c := range m.collections {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *MemRepo) GetCollection(_ context.Context, id string) (*product.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[id]
	if !ok {
		return nil, product.ErrCollectionNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemRepo) CollectionBySlug(_ context.Context, slug string) (*product.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.collections {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, product.ErrCollectionNotFound
}

func (m *MemRepo) CollectionProductIDs(_ context.Context, collectionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for pid, cols := range m.productCols {
		for _, id := range cols {
			if id == collectionID {
				out = append(out, pid)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemRepo) slugTaken(slug, exceptID string, tags bool) bool {
	if tags {
		for _, t := range m.tags {
			if t.Slug == slug && t.ID != exceptID {
				return true
			}
		}
		return false
	}
	for _, c := range m.collections {
		if c.Slug == slug && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *MemRepo) CreateCollection(_ context.Context, c *product.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(c.Slug, c.ID, false) {
		return product.ErrSlugTaken
	}
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	m.collections[c.ID] = &cp
	return nil
}

func (m *MemRepo) UpdateCollection(_ context.Context, c *product.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.collections[c.ID]
	if !ok {
		return product.ErrCollectionNotFound
	}
	if m.slugTaken(c.Slug, c.ID, false) {
		return product.ErrSlugTaken
	}
	c.CreatedAt, c.UpdatedAt = old.CreatedAt, time.Now()
	cp := *c
	m.collections[c.ID] = &cp
	return nil
}

func (m *MemRepo) DeleteCollection(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[id]; !ok {
		return product.ErrCollectionNotFound
	}
	delete(m.collections, id)
	return nil
}

func (m *MemRepo) ListTags(_ context.Context) ([]product.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []product.Tag
	for _, t := range m.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameEN < out[j].NameEN })
	return out, nil
}

func (m *MemRepo) GetTag(_ context.Context, id string) (*product.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, product.ErrTagNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MemRepo) CreateTag(_ context.Context, t *product.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(t.Slug, t.ID, true) {
		return product.ErrSlugTaken
	}
	t.CreatedAt = time.Now()
	cp := *t
	m.tags[t.ID] = &cp
	return nil
}

func (m *MemRepo) UpdateTag(_ context.Context, t *product.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.tags[t.ID]
	if !ok {
		return product.ErrTagNotFound
	}
	if m.slugTaken(t.Slug, t.ID, true) {
		return product.ErrSlugTaken
	}
	t.CreatedAt = old.CreatedAt
	cp := *t
	m.tags[t.ID] = &cp
	return nil
}

func (m *MemRepo) DeleteTag(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[id]; !ok {
		return product.ErrTagNotFound
	}
	delete(m.tags, id)
	return nil
}

var (
	_ product.Repository           = (*MemRepo)(nil)
	_ product.CollectionRepository = (*MemRepo)(nil)
	_ product.TagRepository        = (*MemRepo)(nil)
)
