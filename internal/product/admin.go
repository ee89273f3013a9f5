package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/boutique-ecom/internal/order"
)

// Admin manages products, collections and tags for the back-office.
type Admin struct {
	products    Repository
	collections CollectionRepository
	tags        TagRepository
	log         logrus.FieldLogger
}

func NewAdmin(products Repository, collections CollectionRepository, tags TagRepository, log logrus.FieldLogger) *Admin {
	return &Admin{products: products, collections: collections, tags: tags, log: log}
}

func (a *Admin) ListProducts(ctx context.Context) ([]Product, error) {
	ps, err := a.products.List(ctx)
	if ps == nil && err == nil {
		ps = []Product{}
	}
	return ps, err
}

func (a *Admin) GetProduct(ctx context.Context, id string) (*Product, error) {
	if !IsUUID(id) {
		return nil, ErrNotFound
	}
	return a.products.GetByID(ctx, id)
}

func (a *Admin) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	p := req.Product(uuid.NewString())
	if err := a.products.Create(ctx, p); err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{"product_id": p.ID, "status": p.Status}).Info("product created")
	return p, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if !IsUUID(id) {
		return nil, ErrNotFound
	}
	p := req.Product(id)
	if err := a.products.Update(ctx, p); err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{"product_id": p.ID, "status": p.Status}).Info("product updated")
	return p, nil
}

func (a *Admin) DeleteProduct(ctx context.Context, id string) error {
	if !IsUUID(id) {
		return ErrNotFound
	}
	if err := a.products.Delete(ctx, id); err != nil {
		return err
	}
	a.log.WithField("product_id", id).Info("product deleted")
	return nil
}

func (a *Admin) ListCollections(ctx context.Context) ([]Collection, error) {
	cs, err := a.collections.ListCollections(ctx, false)
	if cs == nil && err == nil {
		cs = []Collection{}
	}
	return cs, err
}

func (a *Admin) GetCollection(ctx context.Context, id string) (*Collection, error) {
	if !IsUUID(id) {
		return nil, ErrCollectionNotFound
	}
	return a.collections.GetCollection(ctx, id)
}

func (a *Admin) CreateCollection(ctx context.Context, req CollectionRequest) (*Collection, error) {
	c := req.Collection(uuid.NewString())
	if err := a.collections.CreateCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *Admin) UpdateCollection(ctx context.Context, id string, req CollectionRequest) (*Collection, error) {
	if !IsUUID(id) {
		return nil, ErrCollectionNotFound
	}
	c := req.Collection(id)
	if err := a.collections.UpdateCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PatchCollection applies the non-nil fields of patch.
func (a *Admin) PatchCollection(ctx context.Context, id string, patch CollectionPatch) (*Collection, error) {
	c, err := a.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
	if patch.DisplayOrder != nil {
		c.DisplayOrder = *patch.DisplayOrder
	}
	if err := a.collections.UpdateCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *Admin) DeleteCollection(ctx context.Context, id string) error {
	if !IsUUID(id) {
		return ErrCollectionNotFound
	}
	return a.collections.DeleteCollection(ctx, id)
}

func (a *Admin) ListTags(ctx context.Context) ([]Tag, error) {
	ts, err := a.tags.ListTags(ctx)
	if ts == nil && err == nil {
		ts = []Tag{}
	}
	return ts, err
}

func (a *Admin) GetTag(ctx context.Context, id string) (*Tag, error) {
	if !IsUUID(id) {
		return nil, ErrTagNotFound
	}
	return a.tags.GetTag(ctx, id)
}

func (a *Admin) CreateTag(ctx context.Context, req TagRequest) (*Tag, error) {
	t := req.Tag(uuid.NewString())
	if err := a.tags.CreateTag(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (a *Admin) UpdateTag(ctx context.Context, id string, req TagRequest) (*Tag, error) {
	if !IsUUID(id) {
		return nil, ErrTagNotFound
	}
	t := req.Tag(id)
	if err := a.tags.UpdateTag(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (a *Admin) DeleteTag(ctx context.Context, id string) error {
	if !IsUUID(id) {
		return ErrTagNotFound
	}
	return a.tags.DeleteTag(ctx, id)
}

// OrderStats is the order side of the dashboard.
type OrderStats interface {
	Counts(ctx context.Context) (map[order.Status]int, error)
	Recent(ctx context.Context, n int) ([]order.Order, error)
}

// DashboardStats catalog counters.
// swagger:model DashboardStats
type DashboardStats struct {
	TotalProducts     int `json:"totalProducts"`
	PublishedProducts int `json:"publishedProducts"`
	DraftProducts     int `json:"draftProducts"`
	TotalCollections  int `json:"totalCollections"`
	ActiveCollections int `json:"activeCollections"`
	LowStockProducts  int `json:"lowStockProducts"`
	ActivePromotions  int `json:"activePromotions"`
	FeaturedProducts  int `json:"featuredProducts"`
	NewProducts       int `json:"newProducts"`
}

// DashboardOrderStats fulfillment counters.
// swagger:model DashboardOrderStats
type DashboardOrderStats struct {
	NewOrders       int `json:"newOrders"`
	PendingOrders   int `json:"pendingOrders"`
	DeliveredOrders int `json:"deliveredOrders"`
}

// RecentOrder dashboard row.
// swagger:model RecentOrder
type RecentOrder struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	CustomerFirstName string          `json:"customer_first_name"`
	CustomerLastName  string          `json:"customer_last_name"`
	TotalAmount       decimal.Decimal `json:"total_amount" swaggertype:"string"`
	Currency          string          `json:"currency"`
	Status            order.Status    `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Dashboard admin landing page payload.
// swagger:model Dashboard
type Dashboard struct {
	Stats            DashboardStats      `json:"stats"`
	OrderStats       DashboardOrderStats `json:"orderStats"`
	RecentOrders     []RecentOrder       `json:"recentOrders"`
	LowStockProducts []StockInfo         `json:"lowStockProducts"`
}

const recentOrders = 5

// Dashboard aggregates catalog and order counters.
func (a *Admin) Dashboard(ctx context.Context, orders OrderStats, now time.Time) (*Dashboard, error) {
	stock, err := a.products.StockInfo(ctx)
	if err != nil {
		return nil, err
	}
	cols, err := a.collections.ListCollections(ctx, false)
	if err != nil {
		return nil, err
	}
	counts, err := orders.Counts(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := orders.Recent(ctx, recentOrders)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		RecentOrders:     make([]RecentOrder, 0, len(recent)),
		LowStockProducts: []StockInfo{},
	}
	for _, s := range stock {
		d.Stats.TotalProducts++
		published := s.Status == StatusPublished
		switch s.Status {
		case StatusPublished:
			d.Stats.PublishedProducts++
		case StatusDraft:
			d.Stats.DraftProducts++
		}
		if PromotionActive(s.IsPromotion, s.PromotionStart, s.PromotionEnd, now) {
			d.Stats.ActivePromotions++
		}
		if !published {
			continue
		}
		if s.IsFeatured {
			d.Stats.FeaturedProducts++
		}
		if s.IsNew {
			d.Stats.NewProducts++
		}
		if LowStock(s.StockQuantity, s.LowStockThreshold) {
			d.Stats.LowStockProducts++
			d.LowStockProducts = append(d.LowStockProducts, s)
		}
	}
	d.Stats.TotalCollections = len(cols)
	for _, c := range cols {
		if c.IsActive {
			d.Stats.ActiveCollections++
		}
	}
	d.OrderStats = DashboardOrderStats{
		NewOrders:       counts[order.StatusNew],
		PendingOrders:   counts[order.StatusPending],
		DeliveredOrders: counts[order.StatusDelivered],
	}
	for i := range recent {
		o := &recent[i]
		d.RecentOrders = append(d.RecentOrders, RecentOrder{
			ID: o.ID, OrderNumber: o.OrderNumber,
			CustomerFirstName: o.CustomerFirstName, CustomerLastName: o.CustomerLastName,
			TotalAmount: o.TotalAmount, Currency: o.Currency, Status: o.Status, CreatedAt: o.CreatedAt,
		})
	}
	return d, nil
}
