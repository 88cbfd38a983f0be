package handler

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/user/streamvue/internal/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 单机本地应用，不校验来源
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage 推送给前端的变更消息
type wsMessage struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub 把事件总线上的变更推送给已连接的客户端
type Hub struct {
	bus     *event.Bus
	mu      sync.Mutex
	clients map[*wsClient]bool
}

// wsClient 单个连接
type wsClient struct {
	conn *websocket.Conn
	send chan wsMessage
}

// NewHub 创建推送中心
func NewHub(bus *event.Bus) *Hub {
	return &Hub{
		bus:     bus,
		clients: make(map[*wsClient]bool),
	}
}

// Run 订阅全部主题并广播，随总线关闭退出
func (h *Hub) Run() {
	events, dispose := h.bus.Subscribe("")
	defer dispose()

	for evt := range events {
		h.broadcast(wsMessage{Topic: evt.Topic, Payload: evt.Payload})
	}
}

// broadcast 广播给所有客户端，写不进去的直接断开
func (h *Hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// register 登记新连接
func (h *Hub) register(client *wsClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

// unregister 注销连接
func (h *Hub) unregister(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS websocket 升级入口
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] 升级连接失败: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan wsMessage, 32),
	}
	h.Hub.register(client)

	go client.writePump()
	go client.readPump(h.Hub)
}

// readPump 只负责消费控制帧和探测断开，客户端不上行业务数据
func (c *wsClient) readPump(hub *Hub) {
	defer func() {
		hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump 下发消息并定期心跳
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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
