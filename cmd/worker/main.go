// cmd/worker/main.go
// Keeps the local fallback snapshot in sync with the primary store.

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maint-kpi/internal/app"
	"maint-kpi/internal/config"
)

func main() {
	interval := flag.Duration("interval", 5*time.Minute, "sync interval")
	flag.Parse()

	cfg := config.Load()
	a := app.New(cfg)

	log.Printf("snapshot sync worker started (every %s)", *interval)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	sync := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := a.Dashboard.SyncToFallback(ctx); err != nil {
			log.Printf("[WARN] snapshot sync failed: %v", err)
			return
		}
		log.Printf("snapshot sync ok")
	}

	sync()
	for {
		select {
		case <-ticker.C:
			sync()
		case <-stop:
			log.Println("worker shutting down")
			return
		}
	}
}
