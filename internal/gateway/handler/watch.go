package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"flattenrepo/internal/gateway/service/flattener"
)

const watchWriteTimeout = 10 * time.Second

// WatchHandler streams task progress over a websocket. Each update is one
// JSON message; the connection closes after the terminal update.
type WatchHandler struct {
	svc      *flattener.Service
	upgrader websocket.Upgrader
}

func NewWatchHandler(svc *flattener.Service) *WatchHandler {
	return &WatchHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			// CORS is handled by the shared middleware.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *WatchHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))

	updates, cancel := h.svc.Watch(id)
	defer cancel()

	task, ok, err := h.svc.Status(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("watch %s: upgrade: %v", id, err)
		return
	}
	defer conn.Close()

	if !h.send(conn, id, toTaskResponse(task)) {
		return
	}
	if task.Status.Terminal() {
		return
	}

	for update := range updates {
		if !h.send(conn, id, toTaskResponse(update)) {
			return
		}
	}
}

func (h *WatchHandler) send(conn *websocket.Conn, id string, resp taskResponse) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("watch %s: write: %v", id, err)
		return false
	}
	return true
}
