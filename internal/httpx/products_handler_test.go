package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
	"github.com/google/uuid"
)

// fakeCatalogStore menerapkan filter/sort/pagination di memory dengan
// semantik yang sama seperti repo postgres.
type fakeCatalogStore struct {
	products []catalog.Product
}

func (f *fakeCatalogStore) List(ctx context.Context, params catalog.ListParams) ([]catalog.Product, int, error) {
	var matched []catalog.Product
	flt := params.Filter()
	for _, p := range f.products {
		if flt.Category != nil && p.Category != *flt.Category {
			continue
		}
		if flt.Status != nil && p.Status != *flt.Status {
			continue
		}
		matched = append(matched, p)
	}
	if params.Sort != "" {
		asc := params.Sort == "asc"
		sort.SliceStable(matched, func(i, j int) bool {
			if asc {
				return matched[i].Price < matched[j].Price
			}
			return matched[i].Price > matched[j].Price
		})
	}
	total := len(matched)
	start := (params.Page - 1) * params.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeCatalogStore) Get(ctx context.Context, id string) (catalog.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (f *fakeCatalogStore) Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if err := in.Validate(); err != nil {
		return catalog.Product{}, err
	}
	p := catalog.Product{ID: uuid.NewString(), Title: in.Title, Price: in.Price,
		Stock: in.Stock, Category: in.Category, Status: in.Status}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeCatalogStore) Update(ctx context.Context, id string, in catalog.ProductUpdate) (catalog.Product, error) {
	return catalog.Product{}, catalog.ErrNotFound
}

func (f *fakeCatalogStore) Delete(ctx context.Context, id string) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

type listBody struct {
	Status      string            `json:"status"`
	Payload     []catalog.Product `json:"payload"`
	Page        int               `json:"page"`
	TotalPages  int               `json:"totalPages"`
	HasPrevPage bool              `json:"hasPrevPage"`
	HasNextPage bool              `json:"hasNextPage"`
	PrevPage    *int              `json:"prevPage"`
	NextPage    *int              `json:"nextPage"`
	Message     string            `json:"message"`
}

func newProductsServer(store *fakeCatalogStore) *httptest.Server {
	h := &ProductsHandler{Store: store, BaseURL: "http://localhost:8080"}
	r := NewRouter()
	h.Register(r)
	return httptest.NewServer(r)
}

func getList(t *testing.T, url string) (int, listBody) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	var body listBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, body
}

func TestListFilterByCategory(t *testing.T) {
	store := &fakeCatalogStore{products: []catalog.Product{
		{ID: "a", Title: "A", Category: "shoes", Price: 10, Status: true},
		{ID: "b", Title: "B", Category: "hats", Price: 5, Status: true},
	}}
	srv := newProductsServer(store)
	defer srv.Close()

	code, body := getList(t, srv.URL+"/api/products?limit=10&page=1&query=category:shoes")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Status != "success" {
		t.Fatalf("envelope status = %q", body.Status)
	}
	if len(body.Payload) != 1 || body.Payload[0].ID != "a" {
		t.Fatalf("payload = %+v", body.Payload)
	}
	if body.TotalPages != 1 || body.HasNextPage {
		t.Fatalf("pagination = %+v", body)
	}
}

func TestListFilterByStatus(t *testing.T) {
	store := &fakeCatalogStore{products: []catalog.Product{
		{ID: "a", Title: "A", Status: true},
		{ID: "b", Title: "B", Status: false},
	}}
	srv := newProductsServer(store)
	defer srv.Close()

	_, body := getList(t, srv.URL+"/api/products?query=status:true")
	if len(body.Payload) != 1 || body.Payload[0].ID != "a" {
		t.Fatalf("payload = %+v", body.Payload)
	}

	// field tidak dikenal: pass-through, semua product kembali
	_, body = getList(t, srv.URL+"/api/products?query=brand:acme")
	if len(body.Payload) != 2 {
		t.Fatalf("pass-through filter should return everything, got %+v", body.Payload)
	}
}

func TestListSortByPrice(t *testing.T) {
	store := &fakeCatalogStore{products: []catalog.Product{
		{ID: "a", Price: 30}, {ID: "b", Price: 10}, {ID: "c", Price: 20},
	}}
	srv := newProductsServer(store)
	defer srv.Close()

	_, body := getList(t, srv.URL+"/api/products?sort=asc")
	if body.Payload[0].ID != "b" || body.Payload[2].ID != "a" {
		t.Fatalf("asc order wrong: %+v", body.Payload)
	}

	_, body = getList(t, srv.URL+"/api/products?sort=desc")
	if body.Payload[0].ID != "a" || body.Payload[2].ID != "b" {
		t.Fatalf("desc order wrong: %+v", body.Payload)
	}
}

func TestListPaginationAcrossPages(t *testing.T) {
	store := &fakeCatalogStore{}
	for i := 0; i < 7; i++ {
		store.products = append(store.products, catalog.Product{ID: uuid.NewString(), Price: float64(i)})
	}
	srv := newProductsServer(store)
	defer srv.Close()

	_, body := getList(t, srv.URL+"/api/products?limit=3&page=1")
	if len(body.Payload) != 3 || body.TotalPages != 3 || !body.HasNextPage || body.HasPrevPage {
		t.Fatalf("page 1: %+v", body)
	}
	_, body = getList(t, srv.URL+"/api/products?limit=3&page=3")
	if len(body.Payload) != 1 || body.HasNextPage || !body.HasPrevPage {
		t.Fatalf("page 3: %+v", body)
	}

	// out of range: payload kosong, dua flag false, bukan error
	code, body := getList(t, srv.URL+"/api/products?limit=3&page=9")
	if code != http.StatusOK {
		t.Fatalf("out-of-range page should not fail, status = %d", code)
	}
	if len(body.Payload) != 0 || body.HasNextPage || body.HasPrevPage {
		t.Fatalf("out-of-range page: %+v", body)
	}
}

func TestListInvalidParams(t *testing.T) {
	srv := newProductsServer(&fakeCatalogStore{})
	defer srv.Close()

	for _, q := range []string{"limit=abc", "page=0", "limit=-1"} {
		code, body := getList(t, srv.URL+"/api/products?"+q)
		if code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, code)
		}
		if body.Status != "error" || body.Message == "" {
			t.Fatalf("%s: expected error envelope, got %+v", q, body)
		}
	}
}

func TestGetProductNotFound(t *testing.T) {
	srv := newProductsServer(&fakeCatalogStore{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/" + uuid.NewString())
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
