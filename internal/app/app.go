// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"

	"maint-kpi/internal/config"
	hh "maint-kpi/internal/handlers/http"
	"maint-kpi/internal/llm"
	"maint-kpi/internal/repositories/localstore"
	mysqlrepo "maint-kpi/internal/repositories/mysql"
	"maint-kpi/internal/services"
	"maint-kpi/internal/util"
	"maint-kpi/pkg/db"
)

// App holds the main router and the wired service layer.
type App struct {
	Router    *mux.Router
	Dashboard *services.DashboardService
}

// New builds the app: opens the snapshot stores, wires the services
// into the handlers and registers all routes. The local JSON store is
// always available; MySQL promotes to primary when reachable.
func New(cfg *config.Config) *App {
	r := mux.NewRouter()

	local := localstore.New(cfg.LocalStorePath)

	var (
		primary  services.SnapshotStore = local
		fallback services.SnapshotStore
	)

	if sqlDB := openMySQL(cfg); sqlDB != nil {
		store := mysqlrepo.NewStore(sqlDB)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := store.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Printf("[ERROR] ensure schema failed, running on local store: %v", err)
		} else {
			primary = store
			fallback = local
		}
	}

	dashboard := services.NewDashboardService(primary, fallback, util.RealClock{})

	var client llm.Client
	if c, err := llm.NewFromEnv(); err != nil {
		log.Printf("[WARN] insights run offline: %v", err)
	} else {
		client = c
	}

	hh.SetDashboardService(dashboard)
	hh.SetInsightService(services.NewInsightService(client))

	RegisterRoutes(r)

	return &App{Router: r, Dashboard: dashboard}
}

// openMySQL opens the pool and pings with retries so the app survives
// a DB container that is still coming up. Returns nil when MySQL is
// unreachable.
func openMySQL(cfg *config.Config) *sql.DB {
	sqlDB, err := db.NewMySQL(db.Config{
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		DB:       cfg.MySQL.DB,
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		MaxOpen:  cfg.MySQL.MaxOpen,
		MaxIdle:  cfg.MySQL.MaxIdle,
	})
	if err != nil {
		log.Printf("[WARN] open mysql failed: %v", err)
		return nil
	}

	var pingErr error
	for i := 0; i < 5; i++ {
		pingErr = sqlDB.Ping()
		if pingErr == nil {
			return sqlDB
		}
		log.Printf("[WARN] ping mysql failed (try %d): %v", i+1, pingErr)
		time.Sleep(3 * time.Second)
	}

	log.Printf("[ERROR] mysql not ready after retries, falling back to local store: %v", pingErr)
	_ = sqlDB.Close()
	return nil
}

// Run starts the HTTP server.
func (a *App) Run(addr string) {
	log.Printf("server running on %s", addr)
	if err := http.ListenAndServe(addr, a.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
