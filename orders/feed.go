package orders

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"arabianx/globals"
	"arabianx/models"
	"arabianx/mq"
	"arabianx/rdx"
	"arabianx/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Hub fans order events out to connected admin dashboards.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	events  chan models.OrderEvent
	done    chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan models.OrderEvent, 64),
		done:    make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case event := <-h.events:
			h.broadcast(event)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
}

// Push queues an event, dropping it when the feed is backed up; the feed is
// advisory, the order store is the source of truth.
func (h *Hub) Push(event models.OrderEvent) {
	select {
	case h.events <- event:
	default:
		log.Println("order feed backlog full, dropping event")
	}
}

func (h *Hub) broadcast(event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == globals.FrontendURL()
	},
}

// Feed upgrades an admin connection onto the live order stream.
func (h *Hub) Feed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	role := utils.GetRoleFromRequest(r)
	if role != models.RoleAdmin && role != models.RoleSuperadmin {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("order feed upgrade error:", err)
		return
	}

	h.add(conn)

	// Reader loop only detects disconnects; the feed is one-way.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// StartFeedWorker bridges Redis order events into the hub.
func StartFeedWorker(h *Hub) {
	sub := rdx.Conn.Subscribe(globals.Ctx, mq.OrderEventsChannel)
	ch := sub.Channel()

	log.Println("order feed worker listening")

	for msg := range ch {
		var event models.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("order feed: bad event payload: %v", err)
			continue
		}
		h.Push(event)
	}
}
