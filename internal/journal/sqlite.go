package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteJournal persists entries to a SQLite database.
type SQLiteJournal struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteJournal opens (or creates) the SQLite database and runs migrations.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite journal opened")
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alerts (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			date        TEXT NOT NULL,
			time        TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			name        TEXT,
			level       INTEGER NOT NULL,
			price       TEXT,
			quantity    INTEGER NOT NULL,
			trend       TEXT,
			rsi         TEXT,
			dma20       TEXT,
			dma50       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_symbol ON alerts(symbol)`,
	}
	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (j *SQLiteJournal) Record(ctx context.Context, e *Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.ExecContext(ctx, `INSERT INTO alerts
		(run_id, timestamp, date, time, symbol, name, level, price, quantity, trend, rsi, dma20, dma50)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.RunID, e.Timestamp.Unix(),
		e.Timestamp.Format("2006-01-02"), e.Timestamp.Format("15:04:05"),
		e.Symbol, e.Name, e.Level, e.Price.String(), e.Quantity, e.Trend,
		e.RSI.String(), e.DMA20.String(), e.DMA50.String(),
	)
	return err
}

// Recent returns the last limit entries, newest first.
func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.QueryContext(ctx, `SELECT run_id, timestamp, symbol, name, level, price, quantity, trend, rsi, dma20, dma50
		FROM alerts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                        Entry
			ts                       int64
			price, rsi, dma20, dma50 string
		)
		if err := rows.Scan(&e.RunID, &ts, &e.Symbol, &e.Name, &e.Level, &price, &e.Quantity,
			&e.Trend, &rsi, &dma20, &dma50); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		for _, f := range []struct {
			dst *decimal.Decimal
			src string
		}{{&e.Price, price}, {&e.RSI, rsi}, {&e.DMA20, dma20}, {&e.DMA50, dma50}} {
			d, err := decimal.NewFromString(f.src)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", f.src, err)
			}
			*f.dst = d
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	log.Info().Msg("closing sqlite journal")
	return j.db.Close()
}
