// cmd/export/main.go
// Standalone export server: plain-text report and sheet endpoints.

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
	"maint-kpi/internal/server"
	"maint-kpi/internal/services"
	"maint-kpi/internal/util"
)

func main() {
	cfg := config.Load()

	// app.New wires the same store stack the API uses.
	a := app.New(cfg)
	router := server.NewRouter(a.Dashboard, services.NewReportService(), util.RealClock{})

	srv := &http.Server{
		Addr:         ":" + cfg.ExportPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("export server running on :%s", cfg.ExportPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down export server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
