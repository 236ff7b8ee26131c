// cmd/ingest/main.go
// Loads a work-order CSV export into the snapshot store.

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"maint-kpi/internal/app"
	"maint-kpi/internal/config"
	"maint-kpi/internal/pipeline"
)

func main() {
	var (
		path   = flag.String("file", "", "path to the work-order CSV export")
		dryRun = flag.Bool("dry-run", false, "parse and report without writing to the store")
	)
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: ingest -file <export.csv> [-dry-run]")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	records, err := pipeline.ReadCSV(f)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}

	parseable := 0
	for _, rec := range records {
		if _, ok := pipeline.ParseDate(rec.Date); ok {
			parseable++
		}
	}
	log.Printf("parsed %d records (%d with valid dates)", len(records), parseable)

	if *dryRun {
		return
	}

	cfg := config.Load()
	a := app.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	degraded, err := a.Dashboard.ReplaceRecords(ctx, records)
	if err != nil {
		log.Fatalf("replace records: %v", err)
	}
	if degraded {
		log.Printf("[WARN] records written to fallback store only")
	}
	log.Printf("ingest complete: %d records", len(records))
}
