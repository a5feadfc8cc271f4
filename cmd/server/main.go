package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"cardgame-api/internal/config"
	"cardgame-api/internal/database"
	"cardgame-api/internal/game/deck"
	"cardgame-api/internal/handlers"
	"cardgame-api/internal/middleware"
	"cardgame-api/internal/services"
	"cardgame-api/internal/tracing"
	"cardgame-api/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	shutdownTracing, err := tracing.InitTracer(context.Background(), tracing.Config{
		ServiceName:  tracing.ServiceName,
		Environment:  cfg.AppEnv,
		PrettyPrint:  cfg.IsDevelopment(),
		TracesExport: cfg.TracesExport,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}()

	db, err := database.OpenAndMigrate(context.Background(), cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db open/migrate: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}()

	hubRef := websocket.NewHubRef(websocket.NewHub())
	go runHub(hubRef)

	deckSvc := services.NewDeckService(deck.New(), db, hubRef, websocket.DefaultRoom)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(middleware.DevCORS(cfg))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")
	handlers.RegisterDeckRoutes(api, deckSvc, cfg.HistoryLimit)

	r.GET("/ws", handlers.WebSocketHandler(hubRef.Get, cfg))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (env=%s db=%s)", cfg.Addr, cfg.AppEnv, cfg.DatabasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %v", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	if h, ok := hubRef.Get(); ok {
		h.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

// runHub runs the current hub and swaps in a fresh one if it panics.
// It returns once a hub exits normally through Stop.
func runHub(hubRef *websocket.HubRef) {
	for {
		hub, ok := hubRef.Get()
		if !ok {
			hub = websocket.NewHub()
			hubRef.Set(hub)
		}

		panicked := false
		func() {
			defer func() {
				if r := recover(); r != nil {
					panicked = true
					log.Printf("hub.Run panic: %v\n%s", r, debug.Stack())
				}
			}()
			hub.Run()
		}()
		if !panicked {
			return
		}

		// Existing clients see a closed hub and stop enqueueing work.
		hub.Stop()
		hubRef.Set(websocket.NewHub())
		time.Sleep(time.Second)
	}
}
