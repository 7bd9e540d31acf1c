package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arenahub/arenahub/internal/directory"
	"github.com/arenahub/arenahub/internal/hub"
	"github.com/arenahub/arenahub/internal/server"
)

const (
	httpShutdownTimeout    = 10 * time.Second
	gatewayShutdownTimeout = 5 * time.Second
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg := server.NewConfigFromEnv()

	dir := directory.New()
	if cfg.DirectorySeed != "" {
		if err := dir.LoadSeed(cfg.DirectorySeed); err != nil {
			log.Fatalf("Failed to load user directory seed: %v", err)
		}
		log.Printf("Loaded user directory seed from %s", cfg.DirectorySeed)
	}

	h := hub.New(dir)
	gateway := server.NewGateway(cfg, h, dir)
	router := server.NewRouter(gateway)
	httpServer := server.CreateServer(cfg.Port, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.StartServer(httpServer)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-stop:
		log.Printf("Received %s, shutting down...", sig)
		if err := server.ShutdownServer(httpServer, httpShutdownTimeout); err != nil {
			log.Printf("HTTP shutdown: %v", err)
		}
		if err := gateway.Shutdown(gatewayShutdownTimeout); err != nil {
			log.Printf("Gateway shutdown: %v", err)
		}
	}
}
