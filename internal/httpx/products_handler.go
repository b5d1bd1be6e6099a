package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// CatalogStore adalah bagian dari catalog repo yang dipakai handler ini.
type CatalogStore interface {
	List(ctx context.Context, params catalog.ListParams) ([]catalog.Product, int, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	Update(ctx context.Context, id string, in catalog.ProductUpdate) (catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Store   CatalogStore
	Feed    *catalog.Feed
	Redis   *redis.Client
	BaseURL string
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Post("/api/products", h.create)
	r.Get("/api/products/{pid}", h.get)
	r.Put("/api/products/{pid}", h.update)
	r.Delete("/api/products/{pid}", h.delete)
}

// listResponse: envelope list + metadata pagination di level yang sama,
// mengikuti bentuk response yang sudah dipakai client.
type listResponse struct {
	Status  string            `json:"status"`
	Payload []catalog.Product `json:"payload"`
	catalog.Pagination
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := catalog.ParseListParams(q.Get("limit"), q.Get("page"), q.Get("sort"), q.Get("query"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, total, err := h.Store.List(ctx, params)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	pg := catalog.Paginate(params, total, h.BaseURL)
	if pg.Page > pg.TotalPages {
		// page di luar range: payload kosong, bukan error
		items = nil
	}
	if items == nil {
		items = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, listResponse{Status: "success", Payload: items, Pagination: pg})
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Create(ctx, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.Feed.ProductCreated(p, r.Header.Get("X-Request-Id"))
	writeSuccess(w, http.StatusCreated, p)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyProduct, pid)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, envelope{Status: "success", Payload: json.RawMessage(s)})
			return
		}
	}

	// 2) fallback store
	p, err := h.Store.Get(ctx, pid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if h.Redis != nil {
		b, _ := json.Marshal(p)
		_ = h.Redis.Set(ctx, key, b, redisx.TTLProductCache).Err()
	}
	writeSuccess(w, http.StatusOK, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")
	var in catalog.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Update(ctx, pid, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.invalidate(ctx, pid)
	h.Feed.ProductUpdated(p, r.Header.Get("X-Request-Id"))
	writeSuccess(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "pid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// ambil dulu supaya payload response berisi product yang dihapus
	p, err := h.Store.Get(ctx, pid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.Delete(ctx, pid); err != nil {
		writeDomainError(w, err)
		return
	}
	h.invalidate(ctx, pid)
	h.Feed.ProductDeleted(pid, r.Header.Get("X-Request-Id"))
	writeSuccess(w, http.StatusOK, p)
}

func (h *ProductsHandler) invalidate(ctx context.Context, pid string) {
	if h.Redis == nil {
		return
	}
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyProduct, pid)).Err()
}
