package session

import (
	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// MemoryLog keeps the session's entries in a slice. It lives exactly as long
// as the session that owns it.
type MemoryLog struct {
	entries []domain.SessionEntry
}

// NewMemoryLog returns an empty log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append implements ports.SessionLog.
func (m *MemoryLog) Append(entry domain.SessionEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

// List implements ports.SessionLog. The returned slice is a copy.
func (m *MemoryLog) List() ([]domain.SessionEntry, error) {
	out := make([]domain.SessionEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Len implements ports.SessionLog.
func (m *MemoryLog) Len() int {
	return len(m.entries)
}

// Close drops the entries.
func (m *MemoryLog) Close() error {
	m.entries = nil
	return nil
}

var _ ports.SessionLog = (*MemoryLog)(nil)
