// Package product holds the catalog: products with their images, sizes and
// colors, collections and tags, and the storefront read model built on them.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/boutique-ecom/internal/db"
)

var (
	ErrNotFound           = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrSlugTaken          = errors.New("slug already exists")
)

type Repository interface {
	ListPublished(ctx context.Context, q PublishedQuery) ([]Product, error)
	GetPublished(ctx context.Context, id string) (*Product, error)
	// FindPublishedByPrefix matches published products whose id starts with shortID.
	FindPublishedByPrefix(ctx context.Context, shortID string) ([]Product, error)

	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	StockInfo(ctx context.Context) ([]StockInfo, error)
}

type CollectionRepository interface {
	ListCollections(ctx context.Context, activeOnly bool) ([]Collection, error)
	GetCollection(ctx context.Context, id string) (*Collection, error)
	CollectionBySlug(ctx context.Context, slug string) (*Collection, error)
	CollectionProductIDs(ctx context.Context, collectionID string) ([]string, error)
	CreateCollection(ctx context.Context, c *Collection) error
	UpdateCollection(ctx context.Context, c *Collection) error
	DeleteCollection(ctx context.Context, id string) error
}

type TagRepository interface {
	ListTags(ctx context.Context) ([]Tag, error)
	GetTag(ctx context.Context, id string) (*Tag, error)
	CreateTag(ctx context.Context, t *Tag) error
	UpdateTag(ctx context.Context, t *Tag) error
	DeleteTag(ctx context.Context, id string) error
}

// PGRepo implements all three repositories over one pool.
type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const productColumns = `
    id, sku, name_en, name_fr, description_en, description_fr,
    price::text, original_price::text,
    is_promotion, promotion_start_date::text, promotion_end_date::text,
    promotion_label_en, promotion_label_fr,
    stock_quantity, low_stock_threshold, status, is_featured, is_new,
    meta_title_en, meta_title_fr, meta_description_en, meta_description_fr,
    display_order, created_at, updated_at`

const collectionColumns = `
    c.id, c.slug, c.name_en, c.name_fr, c.description_en, c.description_fr, c.image_url,
    c.meta_title_en, c.meta_title_fr, c.meta_description_en, c.meta_description_fr,
    c.display_order, c.is_active, c.created_at, c.updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.NameEN, &p.NameFR, &p.DescriptionEN, &p.DescriptionFR,
		&p.Price, &p.OriginalPrice,
		&p.IsPromotion, &p.PromotionStartDate, &p.PromotionEndDate,
		&p.PromotionLabelEN, &p.PromotionLabelFR,
		&p.StockQuantity, &p.LowStockThreshold, &p.Status, &p.IsFeatured, &p.IsNew,
		&p.MetaTitleEN, &p.MetaTitleFR, &p.MetaDescriptionEN, &p.MetaDescriptionFR,
		&p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanCollection(row pgx.Row, extra ...any) (*Collection, error) {
	var c Collection
	dest := append(extra,
		&c.ID, &c.Slug, &c.NameEN, &c.NameFR, &c.DescriptionEN, &c.DescriptionFR, &c.ImageURL,
		&c.MetaTitleEN, &c.MetaTitleFR, &c.MetaDescriptionEN, &c.MetaDescriptionFR,
		&c.DisplayOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func productIDs(ps []Product) []string {
	ids := make([]string, len(ps))
	for i := range ps {
		ids[i] = ps[i].ID
	}
	return ids
}

func (r *PGRepo) ListPublished(ctx context.Context, q PublishedQuery) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+`
    FROM products
    WHERE status = 'published'
      AND ($1::uuid[] IS NULL OR id = ANY($1::uuid[]))
      AND (NOT $2 OR is_featured)
      AND (NOT $3 OR is_new)
    ORDER BY display_order ASC, created_at DESC
    LIMIT $4
  `, q.IDs, q.Featured, q.New, limit)
	if err != nil {
		return nil, fmt.Errorf("list published products: %w", err)
	}
	out, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, r.db, out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) GetPublished(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+`
    FROM products WHERE id = $1 AND status = 'published'`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get published product: %w", err)
	}
	one := []Product{*p}
	if err := r.loadChildren(ctx, r.db, one, true); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (r *PGRepo) FindPublishedByPrefix(ctx context.Context, shortID string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+productColumns+`
    FROM products
    WHERE status = 'published' AND replace(id::text, '-', '') LIKE $1 || '%'
    ORDER BY display_order ASC`, strings.ToLower(shortID))
	if err != nil {
		return nil, fmt.Errorf("find products by prefix: %w", err)
	}
	out, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, r.db, out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// List is the admin list: every status, newest first, images only.
func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	images, err := r.imagesFor(ctx, r.db, productIDs(out))
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Images = images[out[i].ID]
	}
	return out, nil
}

// GetByID is the admin detail: any status, all children, collection and tag ids.
func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	one := []Product{*p}
	if err := r.loadChildren(ctx, r.db, one, false); err != nil {
		return nil, err
	}
	p = &one[0]
	if p.CollectionIDs, err = r.joinIDs(ctx, `SELECT collection_id::text FROM product_collections WHERE product_id = $1`, id); err != nil {
		return nil, err
	}
	if p.TagIDs, err = r.joinIDs(ctx, `SELECT tag_id::text FROM product_tags WHERE product_id = $1`, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) joinIDs(ctx context.Context, sql, id string) ([]string, error) {
	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("product joins: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
    INSERT INTO products (
      id, sku, name_en, name_fr, description_en, description_fr, price, original_price,
      is_promotion, promotion_start_date, promotion_end_date, promotion_label_en, promotion_label_fr,
      stock_quantity, low_stock_threshold, status, is_featured, is_new,
      meta_title_en, meta_title_fr, meta_description_en, meta_description_fr, display_order,
      created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::date,$11::date,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,NOW(),NOW())
    RETURNING created_at, updated_at
  `, p.ID, p.SKU, p.NameEN, p.NameFR, p.DescriptionEN, p.DescriptionFR, p.Price, p.OriginalPrice,
		p.IsPromotion, p.PromotionStartDate, p.PromotionEndDate, p.PromotionLabelEN, p.PromotionLabelFR,
		p.StockQuantity, p.LowStockThreshold, p.Status, p.IsFeatured, p.IsNew,
		p.MetaTitleEN, p.MetaTitleFR, p.MetaDescriptionEN, p.MetaDescriptionFR, p.DisplayOrder,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if err := insertChildren(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update replaces the scalar fields, then swaps every child set in the same
// transaction.
func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
    UPDATE products
    SET sku = $2, name_en = $3, name_fr = $4, description_en = $5, description_fr = $6,
        price = $7, original_price = $8, is_promotion = $9,
        promotion_start_date = $10::date, promotion_end_date = $11::date,
        promotion_label_en = $12, promotion_label_fr = $13,
        stock_quantity = $14, low_stock_threshold = $15, status = $16,
        is_featured = $17, is_new = $18,
        meta_title_en = $19, meta_title_fr = $20, meta_description_en = $21, meta_description_fr = $22,
        display_order = $23, updated_at = NOW()
    WHERE id = $1
    RETURNING created_at, updated_at
  `, p.ID, p.SKU, p.NameEN, p.NameFR, p.DescriptionEN, p.DescriptionFR,
		p.Price, p.OriginalPrice, p.IsPromotion,
		p.PromotionStartDate, p.PromotionEndDate, p.PromotionLabelEN, p.PromotionLabelFR,
		p.StockQuantity, p.LowStockThreshold, p.Status, p.IsFeatured, p.IsNew,
		p.MetaTitleEN, p.MetaTitleFR, p.MetaDescriptionEN, p.MetaDescriptionFR, p.DisplayOrder,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	b := &pgx.Batch{}
	for _, table := range []string{"product_images", "product_sizes", "product_colors", "product_collections", "product_tags"} {
		b.Queue(`DELETE FROM `+table+` WHERE product_id = $1`, p.ID)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("clear product children: %w", err)
	}
	if err := insertChildren(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertChildren(ctx context.Context, tx pgx.Tx, p *Product) error {
	b := &pgx.Batch{}
	for _, img := range p.Images {
		b.Queue(`INSERT INTO product_images (id, product_id, image_url, alt_text_en, alt_text_fr, display_order)
      VALUES ($1,$2,$3,$4,$5,$6)`, img.ID, p.ID, img.ImageURL, img.AltTextEN, img.AltTextFR, img.DisplayOrder)
	}
	for _, s := range p.Sizes {
		b.Queue(`INSERT INTO product_sizes (id, product_id, size, stock_quantity, price_adjustment, display_order)
      VALUES ($1,$2,$3,$4,$5,$6)`, s.ID, p.ID, s.Size, s.StockQuantity, s.PriceAdjustment, s.DisplayOrder)
	}
	for _, c := range p.Colors {
		b.Queue(`INSERT INTO product_colors (id, product_id, name_en, name_fr, hex_code, stock_quantity, display_order)
      VALUES ($1,$2,$3,$4,$5,$6,$7)`, c.ID, p.ID, c.NameEN, c.NameFR, c.HexCode, c.StockQuantity, c.DisplayOrder)
	}
	for _, id := range p.CollectionIDs {
		b.Queue(`INSERT INTO product_collections (product_id, collection_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`, p.ID, id)
	}
	for _, id := range p.TagIDs {
		b.Queue(`INSERT INTO product_tags (product_id, tag_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`, p.ID, id)
	}
	if b.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert product children: %w", err)
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) StockInfo(ctx context.Context) ([]StockInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, name_en, name_fr, sku, status, is_featured, is_new, is_promotion,
           promotion_start_date::text, promotion_end_date::text, stock_quantity, low_stock_threshold
    FROM products ORDER BY stock_quantity ASC`)
	if err != nil {
		return nil, fmt.Errorf("product stock info: %w", err)
	}
	defer rows.Close()
	var out []StockInfo
	for rows.Next() {
		var s StockInfo
		if err := rows.Scan(&s.ID, &s.NameEN, &s.NameFR, &s.SKU, &s.Status, &s.IsFeatured, &s.IsNew,
			&s.IsPromotion, &s.PromotionStart, &s.PromotionEnd, &s.StockQuantity, &s.LowStockThreshold); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// loadChildren fills images, sizes and colors, and with refs also the
// collections and tags, using one query per child table.
func (r *PGRepo) loadChildren(ctx context.Context, q querier, ps []Product, refs bool) error {
	if len(ps) == 0 {
		return nil
	}
	ids := productIDs(ps)

	images, err := r.imagesFor(ctx, q, ids)
	if err != nil {
		return err
	}

	sizes := map[string][]Size{}
	rows, err := q.Query(ctx, `
    SELECT id, product_id, size, stock_quantity, price_adjustment::text, display_order
    FROM product_sizes WHERE product_id = ANY($1::uuid[]) ORDER BY display_order`, ids)
	if err != nil {
		return fmt.Errorf("product sizes: %w", err)
	}
	for rows.Next() {
		var s Size
		var pid string
		if err := rows.Scan(&s.ID, &pid, &s.Size, &s.StockQuantity, &s.PriceAdjustment, &s.DisplayOrder); err != nil {
			rows.Close()
			return err
		}
		sizes[pid] = append(sizes[pid], s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	colors := map[string][]Color{}
	rows, err = q.Query(ctx, `
    SELECT id, product_id, name_en, name_fr, hex_code, stock_quantity, display_order
    FROM product_colors WHERE product_id = ANY($1::uuid[]) ORDER BY display_order`, ids)
	if err != nil {
		return fmt.Errorf("product colors: %w", err)
	}
	for rows.Next() {
		var c Color
		var pid string
		if err := rows.Scan(&c.ID, &pid, &c.NameEN, &c.NameFR, &c.HexCode, &c.StockQuantity, &c.DisplayOrder); err != nil {
			rows.Close()
			return err
		}
		colors[pid] = append(colors[pid], c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range ps {
		ps[i].Images = images[ps[i].ID]
		ps[i].Sizes = sizes[ps[i].ID]
		ps[i].Colors = colors[ps[i].ID]
	}
	if !refs {
		return nil
	}

	rows, err = q.Query(ctx, `
    SELECT pc.product_id, `+collectionColumns+`
    FROM product_collections pc JOIN collections c ON c.id = pc.collection_id
    WHERE pc.product_id = ANY($1::uuid[]) ORDER BY c.display_order`, ids)
	if err != nil {
		return fmt.Errorf("product collections: %w", err)
	}
	cols := map[string][]Collection{}
	for rows.Next() {
		var pid string
		c, err := scanCollection(rows, &pid)
		if err != nil {
			rows.Close()
			return err
		}
		cols[pid] = append(cols[pid], *c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx, `
    SELECT pt.product_id, t.id, t.slug, t.name_en, t.name_fr, t.created_at
    FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
    WHERE pt.product_id = ANY($1::uuid[]) ORDER BY t.name_en`, ids)
	if err != nil {
		return fmt.Errorf("product tags: %w", err)
	}
	tags := map[string][]Tag{}
	for rows.Next() {
		var pid string
		var t Tag
		if err := rows.Scan(&pid, &t.ID, &t.Slug, &t.NameEN, &t.NameFR, &t.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		tags[pid] = append(tags[pid], t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range ps {
		ps[i].Collections = cols[ps[i].ID]
		ps[i].Tags = tags[ps[i].ID]
	}
	return nil
}

func (r *PGRepo) imagesFor(ctx context.Context, q querier, ids []string) (map[string][]Image, error) {
	out := map[string][]Image{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
    SELECT id, product_id, image_url, alt_text_en, alt_text_fr, display_order
    FROM product_images WHERE product_id = ANY($1::uuid[]) ORDER BY display_order`, ids)
	if err != nil {
		return nil, fmt.Errorf("product images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var img Image
		var pid string
		if err := rows.Scan(&img.ID, &pid, &img.ImageURL, &img.AltTextEN, &img.AltTextFR, &img.DisplayOrder); err != nil {
			return nil, err
		}
		out[pid] = append(out[pid], img)
	}
	return out, rows.Err()
}

// Collections.

func (r *PGRepo) ListCollections(ctx context.Context, activeOnly bool) ([]Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+collectionColumns+`
    FROM collections c
    WHERE (NOT $1 OR c.is_active)
    ORDER BY c.display_order ASC, c.name_en ASC`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()
	var out []Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetCollection(ctx context.Context, id string) (*Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := scanCollection(r.db.QueryRow(ctx, `SELECT `+collectionColumns+` FROM collections c WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return c, nil
}

func (r *PGRepo) CollectionBySlug(ctx context.Context, slug string) (*Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := scanCollection(r.db.QueryRow(ctx, `SELECT `+collectionColumns+` FROM collections c WHERE c.slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get collection by slug: %w", err)
	}
	return c, nil
}

func (r *PGRepo) CollectionProductIDs(ctx context.Context, collectionID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT product_id::text FROM product_collections WHERE collection_id = $1`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("collection products: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *PGRepo) CreateCollection(ctx context.Context, c *Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
    INSERT INTO collections (id, slug, name_en, name_fr, description_en, description_fr, image_url,
      meta_title_en, meta_title_fr, meta_description_en, meta_description_fr,
      display_order, is_active, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())
    RETURNING created_at, updated_at
  `, c.ID, c.Slug, c.NameEN, c.NameFR, c.DescriptionEN, c.DescriptionFR, c.ImageURL,
		c.MetaTitleEN, c.MetaTitleFR, c.MetaDescriptionEN, c.MetaDescriptionFR,
		c.DisplayOrder, c.IsActive).Scan(&c.CreatedAt, &c.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *PGRepo) UpdateCollection(ctx context.Context, c *Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
    UPDATE collections
    SET slug = $2, name_en = $3, name_fr = $4, description_en = $5, description_fr = $6, image_url = $7,
        meta_title_en = $8, meta_title_fr = $9, meta_description_en = $10, meta_description_fr = $11,
        display_order = $12, is_active = $13, updated_at = NOW()
    WHERE id = $1
    RETURNING created_at, updated_at
  `, c.ID, c.Slug, c.NameEN, c.NameFR, c.DescriptionEN, c.DescriptionFR, c.ImageURL,
		c.MetaTitleEN, c.MetaTitleFR, c.MetaDescriptionEN, c.MetaDescriptionFR,
		c.DisplayOrder, c.IsActive).Scan(&c.CreatedAt, &c.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrCollectionNotFound
	case db.IsUniqueViolation(err):
		return ErrSlugTaken
	case err != nil:
		return fmt.Errorf("update collection: %w", err)
	}
	return nil
}

func (r *PGRepo) DeleteCollection(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCollectionNotFound
	}
	return nil
}

// Tags.

func (r *PGRepo) ListTags(ctx context.Context) ([]Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, slug, name_en, name_fr, created_at FROM tags ORDER BY name_en ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var out []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Slug, &t.NameEN, &t.NameFR, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetTag(ctx context.Context, id string) (*Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t Tag
	err := r.db.QueryRow(ctx, `SELECT id, slug, name_en, name_fr, created_at FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Slug, &t.NameEN, &t.NameFR, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

func (r *PGRepo) CreateTag(ctx context.Context, t *Tag) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
    INSERT INTO tags (id, slug, name_en, name_fr, created_at) VALUES ($1,$2,$3,$4,NOW())
    RETURNING created_at`, t.ID, t.Slug, t.NameEN, t.NameFR).Scan(&t.CreatedAt)
	if db.IsUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *PGRepo) UpdateTag(ctx context.Context, t *Tag) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
    UPDATE tags SET slug = $2, name_en = $3, name_fr = $4 WHERE id = $1
    RETURNING created_at`, t.ID, t.Slug, t.NameEN, t.NameFR).Scan(&t.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrTagNotFound
	case db.IsUniqueViolation(err):
		return ErrSlugTaken
	case err != nil:
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

func (r *PGRepo) DeleteTag(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}

var (
	_ Repository           = (*PGRepo)(nil)
	_ CollectionRepository = (*PGRepo)(nil)
	_ TagRepository        = (*PGRepo)(nil)
)
