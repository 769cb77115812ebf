package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/service"
)

const (
	CommentCreated = "comment.created"
	CommentDeleted = "comment.deleted"
	CommentLiked   = "comment.liked"

	eventBufferSize = 256
	sendBufferSize  = 16
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = pongWait * 9 / 10
)

type CommentEvent struct {
	Type    string         `json:"type"`
	ItemID  string         `json:"item_id"`
	Comment domain.Comment `json:"comment"`
}

type subscriber struct {
	conn   *websocket.Conn
	send   chan []byte
	itemID string
}

// CommentHub fans comment events out to the WebSocket subscribers of each roadmap item.
// Run owns delivery; Publish never blocks.
type CommentHub struct {
	subscribers map[string]map[*subscriber]struct{}
	mu          sync.RWMutex
	events      chan CommentEvent
	register    chan *subscriber
	unregister  chan *subscriber
	done        chan struct{}
}

func NewCommentHub() *CommentHub {
	return &CommentHub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		events:      make(chan CommentEvent, eventBufferSize),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
		done:        make(chan struct{}),
	}
}

func (h *CommentHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, subs := range h.subscribers {
				for sub := range subs {
					close(sub.send)
				}
			}
			h.subscribers = make(map[string]map[*subscriber]struct{})
			h.mu.Unlock()
			return
		case sub := <-h.register:
			h.mu.Lock()
			if h.subscribers[sub.itemID] == nil {
				h.subscribers[sub.itemID] = make(map[*subscriber]struct{})
			}
			h.subscribers[sub.itemID][sub] = struct{}{}
			h.mu.Unlock()
		case sub := <-h.unregister:
			h.mu.Lock()
			h.remove(sub)
			h.mu.Unlock()
		case event := <-h.events:
			message, err := json.Marshal(event)
			if err != nil {
				zap.L().Error("marshal comment event", zap.Error(err))
				continue
			}

			h.mu.Lock()
			for sub := range h.subscribers[event.ItemID] {
				select {
				case sub.send <- message:
				default:
					// Slow subscriber.
					h.remove(sub)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *CommentHub) remove(sub *subscriber) {
	subs, ok := h.subscribers[sub.itemID]
	if !ok {
		return
	}
	if _, ok = subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.subscribers, sub.itemID)
	}
}

// Publish queues event for delivery. The event is dropped when the queue is full.
func (h *CommentHub) Publish(event CommentEvent) {
	select {
	case h.events <- event:
	default:
		zap.L().Warn("comment event dropped", zap.String("type", event.Type), zap.String("item_id", event.ItemID))
	}
}

func (h *CommentHub) Subscribers(itemID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[itemID])
}

type CommentItemChecker interface {
	CheckItem(ctx context.Context, itemID string) error
}

type CommentStreamHandler struct {
	hub      *CommentHub
	svc      CommentItemChecker
	upgrader websocket.Upgrader
}

func NewCommentStreamHandler(hub *CommentHub, svc CommentItemChecker, allowedOrigins []string) *CommentStreamHandler {
	return &CommentStreamHandler{
		hub: hub,
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// HandleCommentStream godoc
// @Summary      Live comment events for a roadmap item
// @Description  Upgrades to a WebSocket and pushes comment.created, comment.deleted and comment.liked events.
// @Tags         comments
// @Param        id       path       string true "item id"
// @Success      101      {object}   CommentEvent
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /roadmap-items/{id}/comments/stream [get]
func (h *CommentStreamHandler) HandleCommentStream(ctx *gin.Context) {
	itemID := ctx.Param("id")

	if err := h.svc.CheckItem(ctx.Request.Context(), itemID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "id", itemID))
			return
		}

		err = fmt.Errorf("v1.HandleCommentStream -> h.svc.CheckItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		itemID: itemID,
	}
	select {
	case h.hub.register <- sub:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go sub.writePump()
	go sub.readPump(h.hub)
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the connection closing; subscribers never send data.
func (s *subscriber) readPump(hub *CommentHub) {
	defer func() {
		select {
		case hub.unregister <- s:
		case <-hub.done:
		}
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("comment stream closed", zap.Error(err))
			}
			return
		}
	}
}
