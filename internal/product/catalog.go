package product

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var shortIDPattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

// CatalogQuery storefront list filters.
type CatalogQuery struct {
	Collection string
	Featured   bool
	New        bool
	Limit      int
}

// Catalog is the storefront read model over published products.
type Catalog struct {
	products    Repository
	collections CollectionRepository
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewCatalog(products Repository, collections CollectionRepository, log logrus.FieldLogger) *Catalog {
	return &Catalog{products: products, collections: collections, log: log, now: time.Now}
}

func (c *Catalog) List(ctx context.Context, q CatalogQuery) ([]PublicProduct, error) {
	pq := PublishedQuery{Featured: q.Featured, New: q.New, Limit: q.Limit}
	if slug := strings.TrimSpace(q.Collection); slug != "" {
		ids, err := c.collectionFilter(ctx, slug)
		if err != nil {
			return nil, err
		}
		pq.IDs = ids
	}

	ps, err := c.products.ListPublished(ctx, pq)
	if err != nil {
		return nil, err
	}
	now := c.now()
	out := make([]PublicProduct, 0, len(ps))
	for i := range ps {
		out = append(out, ps[i].Public(now))
	}
	return out, nil
}

// collectionFilter returns the product ids to restrict to, or nil when the
// slug is unknown or the collection is empty; both cases list everything.
func (c *Catalog) collectionFilter(ctx context.Context, slug string) ([]string, error) {
	col, err := c.collections.CollectionBySlug(ctx, slug)
	if errors.Is(err, ErrCollectionNotFound) {
		c.log.WithField("collection", slug).Debug("unknown collection slug, not filtering")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids, err := c.collections.CollectionProductIDs(ctx, col.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return ids, nil
}

// Get resolves a raw id or a "shortid-slug" to a published product.
func (c *Catalog) Get(ctx context.Context, ref string) (*PublicProductDetail, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	var p *Product
	if IsUUID(ref) {
		found, err := c.products.GetPublished(ctx, ref)
		if err != nil {
			return nil, err
		}
		p = found
	} else {
		short, _, _ := strings.Cut(ref, "-")
		if !shortIDPattern.MatchString(short) {
			return nil, ErrNotFound
		}
		candidates, err := c.products.FindPublishedByPrefix(ctx, short)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, ErrNotFound
		}
		p = &candidates[0]
		for i := range candidates {
			if ProductSlug(candidates[i].ID, candidates[i].NameEN) == ref {
				p = &candidates[i]
				break
			}
		}
	}
	d := p.Detail(c.now())
	return &d, nil
}

func (c *Catalog) Collections(ctx context.Context) ([]PublicCollection, error) {
	cols, err := c.collections.ListCollections(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]PublicCollection, 0, len(cols))
	for i := range cols {
		out = append(out, cols[i].Public())
	}
	return out, nil
}
