// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maint-kpi/internal/app"
	"maint-kpi/internal/config"
	"maint-kpi/internal/middleware"
)

var BuildVersion = "dev" // set via ldflags

func main() {
	cfg := config.Load()

	a := app.New(cfg)
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.CORS)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("API %s running on :%s", BuildVersion, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
