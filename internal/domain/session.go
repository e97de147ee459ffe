package domain

import "time"

// SessionEntry is one successful prediction recorded in the session log.
// Entries are never mutated once appended.
type SessionEntry struct {
	ID        string     `json:"id"`
	Seq       int        `json:"seq"`
	Timestamp time.Time  `json:"timestamp"`
	Row       FeatureRow `json:"features"`
	Price     Money      `json:"price"`
	Converted *Money     `json:"converted,omitempty"`
}

// SessionSummary aggregates the native prices of a session.
type SessionSummary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// Summarize computes a summary over entries. An empty slice yields a zero summary.
func Summarize(entries []SessionEntry) SessionSummary {
	if len(entries) == 0 {
		return SessionSummary{}
	}
	s := SessionSummary{Count: len(entries), Min: entries[0].Price.Float(), Max: entries[0].Price.Float()}
	var total float64
	for _, e := range entries {
		p := e.Price.Float()
		total += p
		if p < s.Min {
			s.Min = p
		}
		if p > s.Max {
			s.Max = p
		}
	}
	s.Mean = total / float64(len(entries))
	return s
}
