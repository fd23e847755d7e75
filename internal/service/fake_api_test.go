package service

import (
	"context"
	"sync"

	"github.com/Cheertaboi/storefront/internal/models"
)

// fakeAPI implements every backend interface the services depend on.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	products     []models.Product
	productsErr  error
	addErr       error
	added        []string
	lastQuantity int

	cart      []models.CartItem
	cartErr   error
	codes     []string
	codesErr  error
	removeErr error

	checkoutResp models.CheckoutResponse
	checkoutErr  error
	checkoutCode string

	generateResp models.GenerateDiscountResponse
	generateErr  error
	stats        models.Stats
	statsErr     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListItems(context.Context) ([]models.Product, error) {
	f.record("ListItems")
	return f.products, f.productsErr
}

func (f *fakeAPI) AddToCart(_ context.Context, userID, itemID string, quantity int) error {
	f.record("AddToCart")
	f.mu.Lock()
	f.added = append(f.added, userID+"/"+itemID)
	f.lastQuantity = quantity
	f.mu.Unlock()
	return f.addErr
}

func (f *fakeAPI) GetCart(context.Context, string) ([]models.CartItem, error) {
	f.record("GetCart")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart, f.cartErr
}

func (f *fakeAPI) GetDiscountCodes(context.Context, string) ([]string, error) {
	f.record("GetDiscountCodes")
	return f.codes, f.codesErr
}

func (f *fakeAPI) RemoveFromCart(_ context.Context, _, itemID string) error {
	f.record("RemoveFromCart")
	if f.removeErr != nil {
		return f.removeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.cart[:0:0]
	for _, it := range f.cart {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	f.cart = kept
	return nil
}

func (f *fakeAPI) Checkout(_ context.Context, _, code string) (models.CheckoutResponse, error) {
	f.record("Checkout")
	f.checkoutCode = code
	return f.checkoutResp, f.checkoutErr
}

func (f *fakeAPI) GenerateDiscount(context.Context, string) (models.GenerateDiscountResponse, error) {
	f.record("GenerateDiscount")
	return f.generateResp, f.generateErr
}

func (f *fakeAPI) GetStats(context.Context, string) (models.Stats, error) {
	f.record("GetStats")
	return f.stats, f.statsErr
}
