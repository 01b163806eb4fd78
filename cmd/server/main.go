/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the amortization engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize plan store and result cache
  3. Create API handler with dependencies
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -redis   Redis address for the comparison cache (default: empty,
           which uses the in-process memory cache)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Run with the in-process cache
  ./server

  # Run with a shared Redis cache
  ./server -redis=localhost:6379

  # Run on a different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/amortization-engine/api"
	"github.com/warp/amortization-engine/cache"
	"github.com/warp/amortization-engine/plan"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	redisAddr := flag.String("redis", "", "Redis address for the comparison cache (empty = in-process)")
	flag.Parse()

	// Plans live in memory for the lifetime of the process.
	plans := plan.NewMemoryStore()

	var results cache.Cache
	if *redisAddr != "" {
		redisCache := cache.NewRedis(*redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatalf("Failed to reach redis at %s: %v", *redisAddr, err)
		}
		cancel()
		results = redisCache
		log.Printf("Using redis comparison cache at %s", *redisAddr)
	} else {
		results = cache.NewMemory()
	}

	// Initialize handler and router
	handler := api.NewHandler(plans, results)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
