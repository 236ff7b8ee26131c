// internal/handlers/http/debug_store.go
package http

import (
	"encoding/json"
	"net/http"
)

func StoreStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(StoreStatus())
}
