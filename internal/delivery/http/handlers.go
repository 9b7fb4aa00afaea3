package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/danprtma/watchparty/internal/config"
	"github.com/danprtma/watchparty/internal/delivery/ws"
)

// Handler exposes the relay over HTTP: the websocket upgrade endpoint
// plus a few small JSON/PNG endpoints. It does not serve pages or
// static assets.
type Handler struct {
	cfg      *config.Config
	relay    *ws.Relay
	upgrader websocket.Upgrader
}

// NewHandler creates an HTTP handler around the relay
func NewHandler(cfg *config.Config, relay *ws.Relay) *Handler {
	h := &Handler{
		cfg:   cfg,
		relay: relay,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.isOriginAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

// isOriginAllowed checks if the origin is in the allowed list
func (h *Handler) isOriginAllowed(origin string) bool {
	// Empty origin is allowed (same-origin and non-browser clients)
	if origin == "" {
		return true
	}

	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

// HandleWebSocket upgrades HTTP to a websocket connection and hands it
// to the relay. Room membership is negotiated over the socket itself
// via joinRoom.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		slog.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := ws.NewClient(h.relay, conn)
	go client.WritePump()
	go client.ReadPump()
}

// HandleHealthz reports liveness
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// HandleStats returns connection and room counts
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	conns, rooms, members := h.relay.Stats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{
		"connections": conns,
		"rooms":       int64(rooms),
		"members":     int64(members),
	})
}

// HandleInviteQR renders a QR code PNG of the join URL for a room
func (h *Handler) HandleInviteQR(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room")
	if roomID == "" {
		http.Error(w, "Room id required", http.StatusBadRequest)
		return
	}

	joinURL := h.cfg.PublicURL + "/?room=" + url.QueryEscape(roomID)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to encode QR", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Write(png)
}
