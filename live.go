package main

import (
	"context"
	"log/slog"
	"strings"

	"opentreasury/internal/live"
	"opentreasury/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// registerLiveQueries wires the public panels to the hub.
func registerLiveQueries(h *live.Hub, s store.Store) {
	h.Register(live.Query{
		Name:        "balance",
		Collections: []string{store.Treasury},
		Run: func(ctx context.Context) (any, error) {
			b, err := s.GetBalance(ctx)
			if err != nil {
				return nil, err
			}
			return convertBalance(b), nil
		},
	})
	h.Register(live.Query{
		Name:        "transactions",
		Collections: []string{store.Transactions},
		Run: func(ctx context.Context) (any, error) {
			ts, err := s.ListTransactions(ctx, 0)
			if err != nil {
				return nil, err
			}
			return convertTransactions(ts), nil
		},
	})
	h.Register(live.Query{
		Name:        "events",
		Collections: []string{store.Events},
		Run: func(ctx context.Context) (any, error) {
			es, err := s.ListEvents(ctx, "")
			if err != nil {
				return nil, err
			}
			return convertEvents(es), nil
		},
	})
	h.Register(live.Query{
		Name:        "announcements",
		Collections: []string{store.Announcements},
		Run: func(ctx context.Context) (any, error) {
			as, err := s.ListAnnouncements(ctx, latestAnnouncements)
			if err != nil {
				return nil, err
			}
			return convertAnnouncements(as), nil
		},
	})
}

// @Summary Live snapshots
// @Description Upgrade to a websocket that pushes a snapshot of each requested query on connect and after every change
// @Tags live
// @Param q query string false "Comma-separated queries: balance, transactions, events, announcements (default all)"
// @Success 101 "Switching protocols"
// @Failure 400 {object} map[string]interface{} "Not a websocket request"
// @Router /api/live [get]
func serveLive(c *gin.Context) {
	queries := hub.Queries()
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		queries = queries[:0:0]
		for _, name := range strings.Split(q, ",") {
			if name = strings.TrimSpace(name); name != "" {
				queries = append(queries, name)
			}
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Warn("Failed to upgrade to WebSocket", "error", err)
		return
	}

	slog.Debug("Live client connected", "remote", conn.RemoteAddr().String(), "queries", queries)
	live.NewClient(conn).Serve(serverContext, hub, queries)
}
