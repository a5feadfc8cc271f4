package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"cardgame-api/internal/config"
	ws "cardgame-api/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// originPolicy decides which browser origins may open the event feed.
type originPolicy struct {
	dev      bool
	allowAll bool
	allowed  map[string]bool
}

func newOriginPolicy(cfg config.Config) originPolicy {
	p := originPolicy{
		dev:      cfg.IsDevelopment(),
		allowAll: cfg.IsDevelopment() && cfg.DevWebSocketsAllowAll,
		allowed:  map[string]bool{},
	}
	for _, o := range cfg.WSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			p.allowed[o] = true
		}
	}
	return p
}

func (p originPolicy) check(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		// Non-browser clients send no Origin.
		return true
	}
	if p.allowAll {
		return true
	}
	if p.dev && isLocalhostOrigin(origin) {
		return true
	}
	return p.allowed[origin]
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// WebSocketHandler upgrades the connection and subscribes it to deck events.
// The feed is one-way; anything the client sends is discarded.
func WebSocketHandler(hubProvider func() (*ws.Hub, bool), cfg config.Config) gin.HandlerFunc {
	policy := newOriginPolicy(cfg)
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     policy.check,
	}

	return func(c *gin.Context) {
		room := strings.TrimSpace(c.Query("room"))
		if room == "" {
			room = ws.DefaultRoom
		}
		hub, ok := hubProvider()
		if !ok {
			log.Printf("WebSocketHandler hubProvider returned nil: room=%q", room)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already written the HTTP error.
			log.Printf("WebSocketHandler upgrade failed: remote=%s origin=%q err=%v",
				c.ClientIP(), c.Request.Header.Get("Origin"), err,
			)
			return
		}

		client := ws.NewClient(conn, hub, room)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}
}
