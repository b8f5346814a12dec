// Package codec serializes the entry log plus the last-action flag to JSON
// and CSV and parses both formats back, including the legacy bare-array JSON
// backups written before the flag existed.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zzspin/tally/internal/models"
)

// ErrMalformedImport is returned when the data parses as neither the current
// JSON shape, a legacy JSON array, nor CSV with at least one usable line.
var ErrMalformedImport = errors.New("malformed import data")

// Format identifies the claimed file format of an import.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatCSV
)

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

const (
	csvTimeLayout  = "2006-01-02 15:04:05"
	csvHeader      = "Points,Timestamp,IsPaid,IsCustomAdd"
	csvDatePrefix  = "lastActionDate:"
	jsonDateField  = "lastActionDate"
	jsonEntryField = "logEntries"
)

// wireEntry is the on-disk entry shape. Entry IDs are internal and are
// regenerated on import, so they never appear on the wire.
type wireEntry struct {
	Points      int64 `json:"points"`
	Timestamp   int64 `json:"timestamp"`
	IsPaid      bool  `json:"isPaid"`
	IsCustomAdd bool  `json:"isCustomAdd"`
}

type wireDocument struct {
	LastActionDate *int64      `json:"lastActionDate"`
	LogEntries     []wireEntry `json:"logEntries"`
}

// Result is a fully staged import. The caller swaps it into the store as a
// unit so a failed parse never leaves the log partially replaced.
type Result struct {
	Entries []models.LogEntry
	// LastAction is nil when the source carried no last-action flag
	// (legacy JSON array, CSV without a date line).
	LastAction *int64
	// ReplaceEntries is false only for a CSV that carried a date line but
	// no data rows; the existing log is then left untouched.
	ReplaceEntries bool
}

// ExportJSON renders the current log and last-action flag as a pretty-printed
// JSON document.
func ExportJSON(entries []models.LogEntry, lastAction int64) ([]byte, error) {
	doc := wireDocument{
		LastActionDate: &lastAction,
		LogEntries:     make([]wireEntry, 0, len(entries)),
	}
	for _, e := range entries {
		doc.LogEntries = append(doc.LogEntries, wireEntry{
			Points:      e.Points,
			Timestamp:   e.Timestamp,
			IsPaid:      e.IsPaid,
			IsCustomAdd: e.IsCustomAdd,
		})
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// ExportCSV renders the log as CSV. The first line carries the last-action
// flag, the second the column header; timestamps are local wall-clock time.
func ExportCSV(entries []models.LogEntry, lastAction int64) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%d\n", csvDatePrefix, lastAction)
	b.WriteString(csvHeader + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%d,%s,%t,%t\n",
			e.Points, e.Time().Format(csvTimeLayout), e.IsPaid, e.IsCustomAdd)
	}
	return []byte(b.String())
}

// Import parses data according to the claimed format. An unknown format is
// tried as JSON first, then CSV, matching how unrecognized files have always
// been handled.
func Import(data []byte, format Format) (Result, error) {
	switch format {
	case FormatJSON:
		return importJSON(data)
	case FormatCSV:
		return importCSV(data)
	default:
		res, err := importJSON(data)
		if err == nil {
			return res, nil
		}
		return importCSV(data)
	}
}

func importJSON(data []byte) (Result, error) {
	// Current shape: an object with both lastActionDate and logEntries.
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err == nil && doc.LastActionDate != nil && doc.LogEntries != nil {
		return Result{
			Entries:        fromWire(doc.LogEntries),
			LastAction:     doc.LastActionDate,
			ReplaceEntries: true,
		}, nil
	}

	// Legacy shape: a bare array of entries with no last-action flag.
	var legacy []wireEntry
	if err := json.Unmarshal(data, &legacy); err == nil {
		return Result{
			Entries:        fromWire(legacy),
			ReplaceEntries: true,
		}, nil
	}

	return Result{}, fmt.Errorf("%w: not valid JSON in either the current or legacy shape", ErrMalformedImport)
}

func importCSV(data []byte) (Result, error) {
	var res Result

	lines := strings.Split(string(data), "\n")
	nonEmpty := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonEmpty = append(nonEmpty, line)
		}
	}
	lines = nonEmpty
	if len(lines) == 0 {
		return Result{}, fmt.Errorf("%w: CSV file is empty", ErrMalformedImport)
	}

	if strings.HasPrefix(lines[0], csvDatePrefix) {
		raw := strings.TrimSpace(strings.TrimPrefix(lines[0], csvDatePrefix))
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			res.LastAction = &ms
		}
		lines = lines[1:]
	}

	if len(lines) > 0 && strings.Contains(lines[0], "Points,Timestamp") {
		lines = lines[1:]
	}

	for _, line := range lines {
		entry, ok := parseCSVRow(line)
		if !ok {
			// Malformed rows are skipped; one bad line never aborts the import.
			continue
		}
		res.Entries = append(res.Entries, entry)
	}

	if len(res.Entries) == 0 {
		if res.LastAction == nil {
			return Result{}, fmt.Errorf("%w: no valid log entries found in CSV", ErrMalformedImport)
		}
		// Only the date line was usable: apply the flag, keep the log.
		return res, nil
	}

	res.ReplaceEntries = true
	return res, nil
}

func parseCSVRow(line string) (models.LogEntry, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return models.LogEntry{}, false
	}

	pts, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return models.LogEntry{}, false
	}
	ts, err := time.ParseInLocation(csvTimeLayout, strings.TrimSpace(parts[1]), time.Local)
	if err != nil {
		return models.LogEntry{}, false
	}

	entry := models.LogEntry{
		ID:        uuid.New().String(),
		Points:    pts,
		Timestamp: ts.UnixMilli(),
	}
	// Flag columns are optional and default to false; only a literal "true"
	// sets them, so older two-column exports import cleanly.
	if len(parts) > 2 {
		entry.IsPaid = strings.EqualFold(strings.TrimSpace(parts[2]), "true")
	}
	if len(parts) > 3 {
		entry.IsCustomAdd = strings.EqualFold(strings.TrimSpace(parts[3]), "true")
	}
	return entry, true
}

func fromWire(wire []wireEntry) []models.LogEntry {
	entries := make([]models.LogEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, models.LogEntry{
			ID:          uuid.New().String(),
			Points:      w.Points,
			Timestamp:   w.Timestamp,
			IsPaid:      w.IsPaid,
			IsCustomAdd: w.IsCustomAdd,
		})
	}
	return entries
}
