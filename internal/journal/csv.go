package journal

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// CSVHeader is written once, when the journal file is created.
var CSVHeader = []string{
	"Date", "Time", "Symbol", "Stock Name", "Level", "Price",
	"Quantity", "Trend", "RSI", "20 DMA", "50 DMA",
}

// CSVJournal appends entries to a CSV file.
type CSVJournal struct {
	path string
	mu   sync.Mutex
}

// NewCSVJournal returns a journal writing to path. The file is created lazily.
func NewCSVJournal(path string) *CSVJournal {
	return &CSVJournal{path: path}
}

func (j *CSVJournal) Record(_ context.Context, e *Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}
	needHeader := true
	if fi, err := os.Stat(j.path); err == nil && fi.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(CSVHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(csvRow(e)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func csvRow(e *Entry) []string {
	return []string{
		e.Timestamp.Format("2006-01-02"),
		e.Timestamp.Format("15:04:05"),
		e.Symbol,
		e.Name,
		strconv.Itoa(e.Level),
		e.Price.String(),
		strconv.Itoa(e.Quantity),
		e.Trend,
		e.RSI.String(),
		e.DMA20.String(),
		e.DMA50.String(),
	}
}

func (j *CSVJournal) Close() error { return nil }
