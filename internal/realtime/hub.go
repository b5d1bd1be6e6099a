package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
)

const (
	// inbound
	EventAddProduct    = "addProduct"
	EventDeleteProduct = "deleteProduct"

	// outbound
	EventProductsUpdated = "productsUpdated"
	EventError           = "error"

	ErrTypeAddProduct    = "addProductError"
	ErrTypeDeleteProduct = "deleteProductError"
)

// Message adalah frame JSON di atas push channel, dua arah.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type ErrorData struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Store: akses catalog yang dibutuhkan hub. Snapshot selalu dibaca ulang
// dari store, tidak pernah di-cache di memory.
type Store interface {
	ListAll(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

// Session: satu client yang terkoneksi. Send tidak boleh blocking;
// implementasi ws meng-enqueue ke buffer milik client.
type Session interface {
	Send(m Message)
}

// Hub memegang registry subscriber secara eksplisit (bukan global state)
// dan menjalankan protokol broadcast: mutasi -> tulis store -> re-fetch
// seluruh catalog -> push snapshot ke semua client.
type Hub struct {
	store Store
	feed  *catalog.Feed

	mu       sync.Mutex
	sessions map[Session]struct{}
}

func NewHub(store Store, feed *catalog.Feed) *Hub {
	return &Hub{
		store:    store,
		feed:     feed,
		sessions: make(map[Session]struct{}),
	}
}

// Connect mendaftarkan session dan langsung mengirim snapshot penuh ke
// client itu saja.
func (h *Hub) Connect(ctx context.Context, s Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	n := len(h.sessions)
	h.mu.Unlock()
	slog.Info("client connected", "sessions", n)

	snap, err := h.snapshot(ctx)
	if err != nil {
		slog.Error("initial snapshot", "err", err)
		return
	}
	s.Send(snap)
}

// Disconnect membuang session dari registry; tidak ada state lain yang
// perlu dibersihkan.
func (h *Hub) Disconnect(s Session) {
	h.mu.Lock()
	delete(h.sessions, s)
	n := len(h.sessions)
	h.mu.Unlock()
	slog.Info("client disconnected", "sessions", n)
}

// HandleMessage memproses control message dari satu client. Error hanya
// dilaporkan balik ke client pengirim; channel dan client lain tidak
// terganggu, view mereka dibiarkan stale sampai mutasi sukses berikutnya.
func (h *Hub) HandleMessage(ctx context.Context, s Session, m Message) {
	switch m.Event {
	case EventAddProduct:
		var in catalog.ProductInput
		if err := json.Unmarshal(m.Data, &in); err != nil {
			h.sendError(s, ErrTypeAddProduct, err)
			return
		}
		p, err := h.store.Create(ctx, in)
		if err != nil {
			h.sendError(s, ErrTypeAddProduct, err)
			return
		}
		h.feed.ProductCreated(p, "")
		h.broadcastSnapshot(ctx, s, ErrTypeAddProduct)

	case EventDeleteProduct:
		var id string
		if err := json.Unmarshal(m.Data, &id); err != nil {
			h.sendError(s, ErrTypeDeleteProduct, err)
			return
		}
		if err := h.store.Delete(ctx, id); err != nil {
			h.sendError(s, ErrTypeDeleteProduct, err)
			return
		}
		h.feed.ProductDeleted(id, "")
		h.broadcastSnapshot(ctx, s, ErrTypeDeleteProduct)

	default:
		slog.Warn("unknown channel event", "event", m.Event)
	}
}

// broadcastSnapshot: re-fetch seluruh catalog lalu push ke semua session.
// Kalau re-fetch gagal, hanya requester yang dapat error dan tidak ada
// broadcast sama sekali.
func (h *Hub) broadcastSnapshot(ctx context.Context, requester Session, errType string) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		h.sendError(requester, errType, err)
		return
	}

	h.mu.Lock()
	targets := make([]Session, 0, len(h.sessions))
	for s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.Unlock()
	for _, s := range targets {
		s.Send(snap)
	}
}

func (h *Hub) snapshot(ctx context.Context) (Message, error) {
	products, err := h.store.ListAll(ctx)
	if err != nil {
		return Message{}, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return Message{}, err
	}
	return Message{Event: EventProductsUpdated, Data: data}, nil
}

func (h *Hub) sendError(s Session, errType string, err error) {
	slog.Error("channel mutation", "type", errType, "err", err)
	data, _ := json.Marshal(ErrorData{Message: err.Error(), Type: errType})
	s.Send(Message{Event: EventError, Data: data})
}
