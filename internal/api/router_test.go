package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/apiclient"
	"github.com/Cheertaboi/storefront/internal/config"
	"github.com/Cheertaboi/storefront/internal/session"
)

type cartLine struct {
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// fakeBackend is an in-memory stand-in for the storefront REST service.
type fakeBackend struct {
	mu           sync.Mutex
	hits         map[string]int
	products     []map[string]any
	carts        map[string][]cartLine
	codes        map[string][]string
	failItems    bool
	failRemove   bool
	checkoutCode *string
	requestIDs   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		hits: make(map[string]int),
		products: []map[string]any{
			{"id": "p1", "name": "Widget", "price": 5.0},
			{"id": "p2", "name": "Gadget", "price": 12.5},
		},
		carts: make(map[string][]cartLine),
		codes: make(map[string][]string),
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) hit(name string, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[name]++
	b.requestIDs = append(b.requestIDs, r.Header.Get("X-Request-Id"))
}

func (b *fakeBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[name]
}

func (b *fakeBackend) update(fn func(b *fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/items", func(w http.ResponseWriter, r *http.Request) {
		b.hit("items", r)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failItems {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db down"})
			return
		}
		writeJSON(w, http.StatusOK, b.products)
	})
	r.Get("/cart/discount/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("codes", r)
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"availableDiscountCodes": b.codes[chi.URLParam(r, "userId")]})
	})
	r.Get("/cart/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("cart", r)
		b.mu.Lock()
		defer b.mu.Unlock()
		lines := b.carts[chi.URLParam(r, "userId")]
		if lines == nil {
			lines = []cartLine{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": lines})
	})
	r.Post("/cart/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("add", r)
		var req struct {
			ItemID   string `json:"itemId"`
			Quantity int    `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		user := chi.URLParam(r, "userId")
		for _, p := range b.products {
			if p["id"] == req.ItemID {
				b.carts[user] = append(b.carts[user], cartLine{
					ItemID:   req.ItemID,
					ItemName: p["name"].(string),
					Quantity: req.Quantity,
					Price:    p["price"].(float64),
				})
				writeJSON(w, http.StatusCreated, map[string]string{"message": "Item added"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Item not found"})
	})
	r.Delete("/cart/{userId}/{itemId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("remove", r)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failRemove {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not remove item"})
			return
		}
		user, itemID := chi.URLParam(r, "userId"), chi.URLParam(r, "itemId")
		if r.URL.RawPath != "" {
			itemID, _ = url.PathUnescape(itemID)
		}
		var kept []cartLine
		for _, l := range b.carts[user] {
			if l.ItemID != itemID {
				kept = append(kept, l)
			}
		}
		b.carts[user] = kept
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/checkout/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("checkout", r)
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		if code, ok := req["discountCode"]; ok {
			b.checkoutCode = &code
		}
		delete(b.carts, chi.URLParam(r, "userId"))
		_, applied := req["discountCode"]
		amount := 0.0
		if applied {
			amount = 1.0
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":         "Order placed successfully",
			"discountApplied": applied,
			"discountAmount":  amount,
		})
	})
	r.Get("/admin/discount/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("generate", r)
		if chi.URLParam(r, "userId") == "nobody" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User is not eligible"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Discount code generated", "discountCode": "SAVE10"})
	})
	r.Get("/admin/stats/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.hit("stats", r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"userId":"user1","totalOrders":3,"totalItemsPurchased":7,"totalSpent":42.50,"totalDiscount":0,"discountCodes":[]}`)
	})
	return r
}

type harness struct {
	t        *testing.T
	backend  *fakeBackend
	sessions *session.MemoryStore
	handler  http.Handler
	cookie   *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)
	return newHarnessWithURL(t, backend, srv.URL)
}

func newHarnessWithURL(t *testing.T, backend *fakeBackend, baseURL string) *harness {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{
		DiscountRate:  decimal.RequireFromString("0.10"),
		SessionCookie: "sid",
		DefaultUserID: "user1",
		SessionTTL:    time.Hour,
	}
	client := apiclient.NewStorefront(apiclient.New(baseURL, logger))
	store := session.NewMemoryStore(cfg.SessionTTL)
	h, err := NewRouter(cfg, client, session.NewProvider(store, cfg.DefaultUserID), logger)
	require.NoError(t, err)
	return &harness{t: t, backend: backend, sessions: store, handler: h}
}

func (h *harness) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "sid" {
			h.cookie = c
		}
	}
	return rr
}

func (h *harness) seedCart(user string, lines ...cartLine) {
	h.backend.update(func(b *fakeBackend) {
		b.carts[user] = lines
	})
}

func (h *harness) seedCodes(user string, codes ...string) {
	h.backend.update(func(b *fakeBackend) {
		b.codes[user] = codes
	})
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestCatalogListsProducts(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Widget")
	assert.Contains(t, body, "Price: $12.5")
	assert.Contains(t, body, `value="user1"`)
	require.NotNil(t, h.cookie)
}

func TestCatalogBackendDown(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.router())
	srv.Close()
	h := newHarnessWithURL(t, backend, srv.URL)

	rr := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Equal(t, 1, strings.Count(body, "Failed to fetch products."))
	assert.NotContains(t, body, `class="card"`)
}

func TestCatalogServerErrorIsGeneric(t *testing.T) {
	h := newHarness(t)
	h.backend.update(func(b *fakeBackend) {
		b.failItems = true
	})
	rr := h.do(http.MethodGet, "/", nil)
	assert.Contains(t, rr.Body.String(), "Failed to fetch products.")
	assert.NotContains(t, rr.Body.String(), "db down")
}

func TestAddToCartRedirectsWithNotice(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodPost, "/cart/items", url.Values{"itemId": {"p1"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?notice=added", rr.Header().Get("Location"))
	h.backend.update(func(b *fakeBackend) {
		require.Len(t, b.carts["user1"], 1)
		assert.Equal(t, 1, b.carts["user1"][0].Quantity)
	})

	page := h.do(http.MethodGet, "/?notice=added", nil)
	assert.Contains(t, page.Body.String(), "Item added to cart")

	rr = h.do(http.MethodPost, "/cart/items", url.Values{"itemId": {"missing"}})
	assert.Equal(t, "/?notice=add_failed", rr.Header().Get("Location"))
}

func TestSwitchUserChangesIdentity(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)
	rr := h.do(http.MethodPost, "/session", url.Values{"userId": {"alice"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	h.do(http.MethodPost, "/cart/items", url.Values{"itemId": {"p2"}})
	h.backend.update(func(b *fakeBackend) {
		assert.Len(t, b.carts["alice"], 1)
		assert.Empty(t, b.carts["user1"])
	})
}

func TestCartPageScenarioB(t *testing.T) {
	h := newHarness(t)
	h.seedCart("user1", cartLine{ItemID: "a", ItemName: "Widget", Quantity: 2, Price: 5.00})
	h.seedCodes("user1", "SAVE10")

	rr := h.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Subtotal: $10.00")
	assert.Contains(t, body, "Discount: -$1.00")
	assert.Contains(t, body, "Final Total: $9.00")
	assert.Contains(t, body, "save 10%")
	assert.Equal(t, 1, h.backend.count("cart"))
	assert.Equal(t, 1, h.backend.count("codes"))
}

func TestCartCodeEditDoesNotRefetch(t *testing.T) {
	h := newHarness(t)
	h.seedCart("user1", cartLine{ItemID: "a", ItemName: "Widget", Quantity: 2, Price: 5.00})
	h.do(http.MethodGet, "/cart", nil)

	rr := h.do(http.MethodPost, "/cart/code", url.Values{"discountCode": {"X"}})
	body := rr.Body.String()
	assert.Contains(t, body, "Invalid or unavailable discount code")
	assert.Contains(t, body, "Subtotal: $10.00")
	assert.NotContains(t, body, "Final Total")
	assert.Contains(t, body, " disabled>Checkout")
	assert.Equal(t, 1, h.backend.count("cart"))
}

func TestCheckoutFlow(t *testing.T) {
	h := newHarness(t)
	h.seedCart("user1", cartLine{ItemID: "a", ItemName: "Widget", Quantity: 2, Price: 5.00})
	h.seedCodes("user1", "SAVE10")
	h.do(http.MethodGet, "/cart", nil)

	rr := h.do(http.MethodPost, "/cart/checkout", url.Values{"discountCode": {"SAVE10"}})
	body := rr.Body.String()
	assert.Contains(t, body, "Order placed successfully")
	assert.Contains(t, body, "Discount applied! You saved $1.00")
	assert.Contains(t, body, "No items in cart")
	h.backend.update(func(b *fakeBackend) {
		require.NotNil(t, b.checkoutCode)
		assert.Equal(t, "SAVE10", *b.checkoutCode)
	})
	assert.Equal(t, 1, h.backend.count("cart"))
}

func TestCheckoutOmitsEmptyCode(t *testing.T) {
	h := newHarness(t)
	h.seedCart("user1", cartLine{ItemID: "a", ItemName: "Widget", Quantity: 1, Price: 5.00})
	h.do(http.MethodGet, "/cart", nil)

	rr := h.do(http.MethodPost, "/cart/checkout", url.Values{"discountCode": {""}})
	assert.Contains(t, rr.Body.String(), "No discount applied")
	h.backend.update(func(b *fakeBackend) {
		assert.Nil(t, b.checkoutCode)
	})
}

func TestCheckoutRefusedForEmptyCart(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/cart", nil)

	rr := h.do(http.MethodPost, "/cart/checkout", url.Values{"discountCode": {""}})
	assert.Contains(t, rr.Body.String(), "Checkout is not available for this cart")
	assert.Zero(t, h.backend.count("checkout"))
}

func TestRemoveItem(t *testing.T) {
	h := newHarness(t)
	h.seedCart("user1",
		cartLine{ItemID: "a", ItemName: "Widget", Quantity: 1, Price: 5.00},
		cartLine{ItemID: "b", ItemName: "Gadget", Quantity: 1, Price: 2.50},
	)
	h.do(http.MethodGet, "/cart", nil)

	rr := h.do(http.MethodPost, "/cart/items/a/delete", nil)
	body := rr.Body.String()
	assert.NotContains(t, body, "Item Name: Widget")
	assert.Contains(t, body, "Subtotal: $2.50")
	assert.Equal(t, 2, h.backend.count("cart"))
}

func TestRemoveItemFailureKeepsCart(t *testing.T) {
	h := newHarness(t)
	h.seedCart("user1", cartLine{ItemID: "a", ItemName: "Widget", Quantity: 1, Price: 5.00})
	h.do(http.MethodGet, "/cart", nil)
	h.backend.update(func(b *fakeBackend) {
		b.failRemove = true
	})

	rr := h.do(http.MethodPost, "/cart/items/a/delete", nil)
	body := rr.Body.String()
	assert.Contains(t, body, "Could not remove item")
	assert.Contains(t, body, "Item Name: Widget")
	assert.Equal(t, 1, h.backend.count("cart"))
}

func TestAdminScenarioC(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodPost, "/admin/stats", url.Values{"userId": {"user1"}})
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Stats for user1")
	assert.Contains(t, body, "Total Orders: 3")
	assert.Contains(t, body, "Total Items Purchased: 7")
	assert.Contains(t, body, "Total Spent: $42.5")
	assert.Contains(t, body, "Total Discount: $0")
	assert.Contains(t, body, "Discount Codes Used: None")
}

func TestAdminGenerateDiscount(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodPost, "/admin/discount", url.Values{"userId": {"user1"}})
	assert.Contains(t, rr.Body.String(), "Discount code generated: SAVE10")

	rr = h.do(http.MethodPost, "/admin/discount", url.Values{"userId": {"nobody"}})
	assert.Contains(t, rr.Body.String(), "User is not eligible")
	assert.NotContains(t, rr.Body.String(), "Discount code generated")
}

func TestRequestIDPropagatesToBackend(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get("X-Request-Id"))
	h.backend.update(func(b *fakeBackend) {
		assert.Contains(t, b.requestIDs, "req-42")
	})
}

func TestRemoveItemWithEscapedID(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
	}{
		{"percent sign", "a%41"},
		{"slash", "a/b"},
		{"space", "x y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.seedCart("user1",
				cartLine{ItemID: tt.itemID, ItemName: "Odd", Quantity: 1, Price: 1.00},
				cartLine{ItemID: "b", ItemName: "Gadget", Quantity: 1, Price: 2.50},
			)
			page := h.do(http.MethodGet, "/cart", nil)
			action := "/cart/items/" + url.PathEscape(tt.itemID) + "/delete"
			require.Contains(t, page.Body.String(), `action="`+action+`"`)

			rr := h.do(http.MethodPost, action, nil)
			body := rr.Body.String()
			assert.NotContains(t, body, "Item Name: Odd")
			assert.Contains(t, body, "Item Name: Gadget")
			h.backend.update(func(b *fakeBackend) {
				require.Len(t, b.carts["user1"], 1)
				assert.Equal(t, "b", b.carts["user1"][0].ItemID)
			})
		})
	}
}

func TestCookielessRequestsLeaveNoSessions(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 200; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		h.handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), `value="user1"`)
	}
	assert.Zero(t, h.sessions.Len())

	h.do(http.MethodGet, "/", nil)
	h.do(http.MethodPost, "/session", url.Values{"userId": {"alice"}})
	assert.Equal(t, 1, h.sessions.Len())
}
