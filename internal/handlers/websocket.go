package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"riskspin-backend/internal/middleware"
	"riskspin-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 5 * time.Second

type WebSocketHandler struct {
	hub *WebSocketHub
}

// WebSocketHub owns every connection; only its run loop writes to them.
type WebSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	closeOnce  sync.Once

	mu          sync.RWMutex
	lastRanking []models.LeaderboardRow
}

type Client struct {
	SessionID string
	Conn      *websocket.Conn
}

type Message struct {
	Type      string      `json:"type"`
	SessionID string      `json:"-"`
	Data      interface{} `json:"data"`
}

func NewWebSocketHandler() *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
		done:       make(chan struct{}),
	}

	go hub.run()

	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) Close() {
	h.hub.closeOnce.Do(func() { close(h.hub.done) })
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		SessionID: sessionID,
		Conn:      conn,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	defer func() {
		select {
		case h.hub.unregister <- client:
		case <-h.hub.done:
		}
		conn.Close()
	}()

	if rows := h.hub.ranking(); rows != nil {
		h.hub.send(&Message{Type: "RANKING_UPDATE", SessionID: sessionID, Data: rows})
	}

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if msg.Type == "PING" {
			h.hub.send(&Message{
				Type:      "PONG",
				SessionID: sessionID,
				Data:      gin.H{"timestamp": time.Now().Unix()},
			})
		}
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			if old, ok := hub.clients[client.SessionID]; ok && old != client.Conn {
				old.Close()
			}
			hub.clients[client.SessionID] = client.Conn

		case client := <-hub.unregister:
			if conn, ok := hub.clients[client.SessionID]; ok && conn == client.Conn {
				delete(hub.clients, client.SessionID)
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)

		case <-hub.done:
			for id, conn := range hub.clients {
				conn.Close()
				delete(hub.clients, id)
			}
			return
		}
	}
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	if message.SessionID != "" {
		if conn, ok := hub.clients[message.SessionID]; ok {
			hub.write(message.SessionID, conn, message)
		}
		return
	}
	for id, conn := range hub.clients {
		hub.write(id, conn, message)
	}
}

func (hub *WebSocketHub) write(sessionID string, conn *websocket.Conn, message *Message) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(message); err != nil {
		log.Printf("WebSocket write to %s failed: %v", sessionID, err)
		conn.Close()
		delete(hub.clients, sessionID)
	}
}

// send drops the message when the queue is full so pollers never block on slow clients.
func (hub *WebSocketHub) send(msg *Message) {
	select {
	case hub.broadcast <- msg:
	case <-hub.done:
	default:
		log.Printf("WebSocket queue full, dropping %s", msg.Type)
	}
}

func (hub *WebSocketHub) ranking() []models.LeaderboardRow {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return hub.lastRanking
}

func (h *WebSocketHandler) BroadcastRanking(rows []models.LeaderboardRow) {
	h.hub.mu.Lock()
	h.hub.lastRanking = rows
	h.hub.mu.Unlock()

	h.hub.send(&Message{Type: "RANKING_UPDATE", Data: rows})
}

func (h *WebSocketHandler) NotifyBonus(sessionID string, bonus int64) {
	h.hub.send(&Message{
		Type:      "BONUS",
		SessionID: sessionID,
		Data: gin.H{
			"bonus":   bonus,
			"message": "Bonus! You won an extra " + models.FormatPoints(float64(bonus)) + "p!",
		},
	})
}

func (h *WebSocketHandler) BroadcastBusy(busy bool) {
	h.hub.send(&Message{Type: "BUSY", Data: gin.H{"busy": busy}})
}
