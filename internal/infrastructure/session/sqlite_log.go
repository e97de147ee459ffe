package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// SQLiteLog keeps the session's entries in a private in-memory SQLite
// database. Nothing is written to disk; the database disappears on Close.
type SQLiteLog struct {
	db    *sql.DB
	mu    sync.Mutex
	count int
}

// NewSQLiteLog opens a fresh in-memory database.
func NewSQLiteLog() (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	db.SetMaxOpenConns(1)
	store := &SQLiteLog{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteLog) init() error {
	_, err := s.db.Exec(`CREATE TABLE entries (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		features TEXT NOT NULL,
		price TEXT NOT NULL,
		currency TEXT NOT NULL,
		converted TEXT,
		converted_currency TEXT
	);`)
	if err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

// Append implements ports.SessionLog.
func (s *SQLiteLog) Append(entry domain.SessionEntry) error {
	features, err := json.Marshal(entry.Row)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	var converted, convertedCurrency sql.NullString
	if entry.Converted != nil {
		converted = sql.NullString{String: entry.Converted.Amount.String(), Valid: true}
		convertedCurrency = sql.NullString{String: entry.Converted.Currency, Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO entries
		(seq, id, timestamp, features, price, currency, converted, converted_currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Seq,
		entry.ID,
		entry.Timestamp.Format(time.RFC3339Nano),
		string(features),
		entry.Price.Amount.String(),
		entry.Price.Currency,
		converted,
		convertedCurrency,
	)
	if err != nil {
		return fmt.Errorf("insert session entry: %w", err)
	}
	s.count++
	return nil
}

// List implements ports.SessionLog.
func (s *SQLiteLog) List() ([]domain.SessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT seq, id, timestamp, features, price, currency, converted, converted_currency
		FROM entries ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query session entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.SessionEntry
	for rows.Next() {
		var (
			entry                    domain.SessionEntry
			ts, features, price, cur string
			converted, convertedCur  sql.NullString
		)
		if err := rows.Scan(&entry.Seq, &entry.ID, &ts, &features, &price, &cur, &converted, &convertedCur); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("decode timestamp: %w", err)
		}
		entry.Timestamp = t
		if err := json.Unmarshal([]byte(features), &entry.Row); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
		amount, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("decode price: %w", err)
		}
		entry.Price = domain.Money{Amount: amount, Currency: cur}
		if converted.Valid {
			amount, err := decimal.NewFromString(converted.String)
			if err != nil {
				return nil, fmt.Errorf("decode converted price: %w", err)
			}
			entry.Converted = &domain.Money{Amount: amount, Currency: convertedCur.String}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Len implements ports.SessionLog.
func (s *SQLiteLog) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close discards the database.
func (s *SQLiteLog) Close() error {
	return s.db.Close()
}

var _ ports.SessionLog = (*SQLiteLog)(nil)
