package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/carts"
	"github.com/go-chi/chi/v5"
)

type CartsHandler struct {
	Service *carts.Service
}

func (h *CartsHandler) Register(r *chi.Mux) {
	r.Post("/api/carts", h.create)
	r.Get("/api/carts/{cid}", h.get)
	r.Put("/api/carts/{cid}", h.replaceItems)
	r.Delete("/api/carts/{cid}", h.clear)
	r.Post("/api/carts/{cid}/products/{pid}", h.addItem)
	r.Put("/api/carts/{cid}/products/{pid}", h.setQuantity)
	r.Delete("/api/carts/{cid}/products/{pid}", h.removeItem)
}

func (h *CartsHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.Create(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, cart)
}

func (h *CartsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cart, err := h.Service.GetExpanded(ctx, chi.URLParam(r, "cid"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *CartsHandler) replaceItems(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Products []carts.LineItem `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.ReplaceItems(ctx, chi.URLParam(r, "cid"), body.Products)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *CartsHandler) clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.Clear(ctx, chi.URLParam(r, "cid"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *CartsHandler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.AddItem(ctx, chi.URLParam(r, "cid"), chi.URLParam(r, "pid"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *CartsHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.SetQuantity(ctx, chi.URLParam(r, "cid"), chi.URLParam(r, "pid"), body.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

func (h *CartsHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.RemoveItem(ctx, chi.URLParam(r, "cid"), chi.URLParam(r, "pid"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}
