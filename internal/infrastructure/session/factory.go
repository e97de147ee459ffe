package session

import (
	"fmt"

	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// New opens a log for the named backend.
func New(backend string) (ports.SessionLog, error) {
	switch backend {
	case "", domain.SessionBackendMemory:
		return NewMemoryLog(), nil
	case domain.SessionBackendSQLite:
		return NewSQLiteLog()
	default:
		return nil, fmt.Errorf("unknown session backend %q", backend)
	}
}
