package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingPeriod   = 50 * time.Second

	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsSession menjembatani satu koneksi gorilla ke Hub. Outbound lewat
// channel buffered; client yang terlalu lambat pesannya di-drop supaya
// broadcast tidak pernah blocking.
type wsSession struct {
	conn *websocket.Conn
	send chan Message
}

func (s *wsSession) Send(m Message) {
	select {
	case s.send <- m:
	default:
		slog.Warn("slow websocket client, dropping message", "event", m.Event)
	}
}

// ServeWS meng-upgrade request HTTP jadi push channel dan memasangnya
// ke hub sampai client disconnect.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "err", err)
		return
	}

	s := &wsSession{conn: conn, send: make(chan Message, sendBuffer)}

	// Context per koneksi, bukan r.Context(): request context mati begitu
	// handler return, sedangkan koneksi ini hidup terus.
	ctx, cancel := context.WithCancel(context.Background())

	// register dulu sebelum read pump jalan, supaya Disconnect tidak
	// mungkin mendahului Connect
	hub.Connect(ctx, s)

	go s.writePump(cancel)
	go s.readPump(ctx, cancel, hub)
}

func (s *wsSession) readPump(ctx context.Context, cancel context.CancelFunc, hub *Hub) {
	defer func() {
		hub.Disconnect(s)
		cancel()
		_ = s.conn.Close()
	}()

	_ = s.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		var m Message
		if err := s.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read", "err", err)
			}
			return
		}
		hub.HandleMessage(ctx, s, m)
	}
}

func (s *wsSession) writePump(cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = s.conn.Close()
	}()

	for {
		select {
		case m := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(m); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
