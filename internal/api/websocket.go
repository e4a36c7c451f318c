package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"restoran/internal/chat"
	"restoran/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxMessage = 4 * 1024
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// chatRequest is what the widget sends over the socket
type chatRequest struct {
	Text string `json:"text"`
}

// WSConnection ties one browser socket to one chat session
type WSConnection struct {
	conn    *websocket.Conn
	send    chan []byte
	mu      sync.Mutex
	closed  bool
	session *chat.Session
	log     *zap.Logger
}

// ChatSocket opens a chat session for the lifetime of the connection
func (k *SiteAPI) ChatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		k.log.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	session := k.Hub.Open()
	k.Monitor.SetActiveSessions(k.Hub.Len())
	messages, stop := session.Subscribe()

	ws := &WSConnection{
		conn:    conn,
		send:    make(chan []byte, 256),
		session: session,
		log:     k.log.With(zap.String("session", session.ID)),
	}

	for _, msg := range session.Messages() {
		ws.sendMessage(msg)
	}

	go ws.forward(messages)
	go ws.writePump()
	go ws.readPump(func() {
		stop()
		if err := k.Hub.Close(session.ID); err == nil {
			k.Monitor.SetActiveSessions(k.Hub.Len())
		}
	})
}

// forward relays transcript messages until the session is closed
func (c *WSConnection) forward(messages <-chan models.ChatMessage) {
	for msg := range messages {
		c.sendMessage(msg)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump pumps messages from the WebSocket connection to the session
func (c *WSConnection) readPump(onClose func()) {
	defer func() {
		onClose()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket error", zap.Error(err))
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes one visitor frame
func (c *WSConnection) handleMessage(message []byte) {
	var req chatRequest
	if err := json.Unmarshal(message, &req); err != nil {
		c.sendError("invalid message")
		return
	}

	_, err := c.session.Send(req.Text)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		// blank input is ignored, as in the widget
	case err != nil:
		c.sendError(err.Error())
	}
}

func (c *WSConnection) sendMessage(msg models.ChatMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to marshal chat message", zap.Error(err))
		return
	}
	c.enqueue(data)
}

// sendError sends an error message to the client
func (c *WSConnection) sendError(message string) {
	data, _ := json.Marshal(map[string]string{"error": message})
	c.enqueue(data)
}

func (c *WSConnection) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("websocket buffer full, dropping message")
	}
}
