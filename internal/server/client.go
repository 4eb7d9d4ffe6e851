package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"skrillax-agent/internal/engine"
	"skrillax-agent/internal/network"
	"skrillax-agent/pkg/api"
	"skrillax-agent/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var connSeq atomic.Uint64

var errObserver = errors.New("observer connection cannot send commands")

// Client - посредник между Websocket и движком.
// Первое сообщение - рукопожатие: Token с ID сущности, от имени которой клиент будет слать команды.
// Пустой Token - зритель, который только получает изменения.
type Client struct {
	Engine *engine.Engine
	Hub    *network.Broadcaster
	Conn   *websocket.Conn
	ID     string
	Entity string

	updates <-chan api.ServerMessage
	log     *logrus.Entry
}

func NewClient(eng *engine.Engine, hub *network.Broadcaster, conn *websocket.Conn) *Client {
	id := fmt.Sprintf("ws-%d", connSeq.Add(1))
	return &Client{
		Engine:  eng,
		Hub:     hub,
		Conn:    conn,
		ID:      id,
		updates: hub.Register(id, ""),
		log:     logger.Component("ws_client").WithField("conn_id", id),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.WithField("entity_id", c.Entity).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE
	// Токен не проверяется: /ws стоит за протокольным слоем, который уже
	// аутентифицировал соединение и подставил ID сущности игрока (GM тоже).
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		c.log.WithError(err).Warn("Handshake failed")
		return
	}
	if hello.Token != "" {
		c.Entity = hello.Token
		c.Hub.Bind(c.ID, c.Entity)
	}
	c.log.WithField("entity_id", c.Entity).Info("Client connected")

	// 2. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			return
		}
		if c.Entity == "" {
			c.reject(cmd, errObserver)
			continue
		}
		// Клиент действует только от своего имени
		cmd.Token = c.Entity
		if err := c.Engine.Submit(cmd); err != nil {
			c.reject(cmd, err)
		}
	}
}

func (c *Client) reject(cmd api.ClientCommand, err error) {
	c.Hub.SendTo(c.ID, api.ServerMessage{
		Type:  api.MsgError,
		Tick:  c.Engine.TickCount(),
		Error: fmt.Sprintf("%s: %v", cmd.Action, err),
	})
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
