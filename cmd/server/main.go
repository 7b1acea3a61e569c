/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the roster engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse command-line flags
  2. Initialize SQLite store (seeds default settings)
  3. Create API handler and carry-over scheduler
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: roster.db)
           Use ":memory:" for an in-memory database

ENVIRONMENT:
  PORT     Overrides -port when set
  DB_PATH  Overrides -db when set
  Variables may also come from a .env file in the working directory.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the carry-over scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/roster.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
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
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/store/sqlite"
)

func main() {
	// A .env file is optional; real environment variables win.
	godotenv.Load()

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "roster.db", "SQLite database path")
	flag.Parse()

	if env := os.Getenv("PORT"); env != "" {
		p, err := strconv.Atoi(env)
		if err != nil {
			log.Fatalf("Invalid PORT value %q: %v", env, err)
		}
		*port = p
	}
	if env := os.Getenv("DB_PATH"); env != "" {
		*dbPath = env
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler and background carry-over
	handler := api.NewHandler(store)

	scheduler := api.NewCarryOverScheduler(handler)
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
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
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
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
