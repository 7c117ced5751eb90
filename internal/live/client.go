package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message is the frame written to websocket clients.
type Message struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client streams snapshots of a set of queries to one websocket. A client
// that falls sendBuffer messages behind is disconnected.
type Client struct {
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// Serve subscribes to queries and pumps snapshots until the socket closes
// or ctx is done. All subscriptions are cancelled on return.
func (c *Client) Serve(ctx context.Context, hub *Hub, queries []string) {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	defer c.close()

	go c.readPump()

	var cancels []func()
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()
	for _, name := range queries {
		cancel, err := hub.Subscribe(ctx, name, c.deliver)
		if err != nil {
			slog.Warn("Live subscribe failed", "query", name, "error", err)
			c.enqueue(Message{Type: "error", Query: name, Error: err.Error()})
			continue
		}
		cancels = append(cancels, cancel)
	}

	c.writePump(ctx)
}

func (c *Client) deliver(s Snapshot) {
	c.enqueue(Message{Type: "snapshot", Query: s.Query, Data: s.Data})
}

func (c *Client) enqueue(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		slog.Error("Failed to marshal live message", "query", m.Query, "error", err)
		return
	}
	select {
	case <-c.done:
	case c.send <- data:
	default:
		slog.Warn("Dropping slow live client", "remote", c.conn.RemoteAddr().String())
		c.close()
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// best effort, the connection is closed right after
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				slog.Debug("Live write failed", "remote", c.conn.RemoteAddr().String(), "error", err)
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				slog.Debug("Live ping failed", "remote", c.conn.RemoteAddr().String(), "error", err)
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

// readPump discards client frames; it exists to process control frames and
// notice disconnects.
func (c *Client) readPump() {
	defer c.close()
	c.conn.SetReadLimit(512)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
