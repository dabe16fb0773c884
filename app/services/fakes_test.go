package services_test

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/repwear/app/models"
	"github.com/shashiranjanraj/repwear/app/repositories"
)

// In-memory fakes for the repository interfaces. They implement just
// enough behavior for the service tests.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo(seed ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Slug == p.Slug {
			return repositories.ErrDuplicate
		}
	}
	p.ID = primitive.NewObjectID()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, update bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if status, ok := update["status"].(string); ok {
		p.Status = status
	}
	if name, ok := update["name"].(string); ok {
		p.Name = name
	}
	if stock, ok := update["stock"].(int); ok {
		p.Stock = stock
	}
	if variants, ok := update["variants"].([]models.Variant); ok {
		p.Variants = variants
	}
	if cm, ok := update["colorMedia"].(map[string]models.ColorMedia); ok {
		p.ColorMedia = cm
	}
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repositories.ProductFilter) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindManyByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return repositories.ErrNotFound
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) DecrementVariantStock(_ context.Context, id primitive.ObjectID, variantID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	v := p.FindVariant(variantID)
	if v == nil || v.Stock < qty {
		return repositories.ErrNotFound
	}
	v.Stock -= qty
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *fakeProductRepo) IncrementVariantStock(_ context.Context, id primitive.ObjectID, variantID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	v := p.FindVariant(variantID)
	if v == nil {
		return repositories.ErrNotFound
	}
	v.Stock += qty
	p.Stock += qty
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[primitive.ObjectID]*models.Cart{}}
}

func (r *fakeCartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		cp := *c
		cp.Items = append([]models.CartItem(nil), c.Items...)
		return &cp, nil
	}
	return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
}

func (r *fakeCartRepo) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = &cp
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		c.Items = []models.CartItem{}
	}
	return nil
}

func (r *fakeCartRepo) PruneProduct(_ context.Context, productID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.carts {
		kept := c.Items[:0]
		for _, item := range c.Items {
			if item.ProductID == productID {
				n++
				continue
			}
			kept = append(kept, item)
		}
		c.Items = kept
	}
	return n, nil
}

type fakeOrderRepo struct {
	mu          sync.Mutex
	orders      map[primitive.ObjectID]*models.Order
	seq         int64
	failCreates int // next n Create calls fail (transient-write simulation)
}

func newFakeOrderRepo(seed ...*models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[primitive.ObjectID]*models.Order{}}
	for _, o := range seed {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		return errors.New("write timeout")
	}
	o.ID = primitive.NewObjectID()
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByOrderNumber(_ context.Context, number string) (*models.Order, error) {
	return r.findBy(func(o *models.Order) bool { return o.OrderNumber == number })
}

func (r *fakeOrderRepo) FindBySessionID(_ context.Context, sessionID string) (*models.Order, error) {
	return r.findBy(func(o *models.Order) bool { return o.StripeSessionID == sessionID })
}

func (r *fakeOrderRepo) FindByPaymentIntentID(_ context.Context, intentID string) (*models.Order, error) {
	return r.findBy(func(o *models.Order) bool { return o.StripePaymentIntentID == intentID })
}

func (r *fakeOrderRepo) findBy(match func(*models.Order) bool) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if match(o) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f repositories.OrderFilter) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if f.OrderStatus != "" && o.OrderStatus != f.OrderStatus {
			continue
		}
		if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Update(_ context.Context, id primitive.ObjectID, update bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := update["orderStatus"].(string); ok {
		o.OrderStatus = v
	}
	if v, ok := update["paymentStatus"].(string); ok {
		o.PaymentStatus = v
	}
	return nil
}

func (r *fakeOrderRepo) NextSequence(_ context.Context, _ string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

type fakeWishlistRepo struct {
	mu    sync.Mutex
	lists map[primitive.ObjectID]*models.Wishlist
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{lists: map[primitive.ObjectID]*models.Wishlist{}}
}

func (r *fakeWishlistRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.lists[userID]; ok {
		cp := *w
		cp.Products = append([]models.WishlistEntry(nil), w.Products...)
		return &cp, nil
	}
	return &models.Wishlist{UserID: userID, Products: []models.WishlistEntry{}}, nil
}

func (r *fakeWishlistRepo) AddProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.lists[userID]
	if !ok {
		w = &models.Wishlist{UserID: userID}
		r.lists[userID] = w
	}
	for _, e := range w.Products {
		if e.ProductID == productID {
			return nil
		}
	}
	w.Products = append(w.Products, models.WishlistEntry{ProductID: productID})
	return nil
}

func (r *fakeWishlistRepo) RemoveProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.lists[userID]
	if !ok {
		return nil
	}
	kept := w.Products[:0]
	for _, e := range w.Products {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	w.Products = kept
	return nil
}
