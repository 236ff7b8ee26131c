// internal/util/ids.go
// ID generator for request/audit trails.

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}
