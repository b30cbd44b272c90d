package errorlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ms1708/academy-portal/internal/config"
	"github.com/ms1708/academy-portal/internal/storage"
)

// Level classifies a log entry.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

// Entry is a single recorded problem or audit line.
type Entry struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"additionalData,omitempty"`
}

// DailyLog buckets entries by calendar date, newest entry first.
type DailyLog struct {
	Date         string  `json:"date"`
	Entries      []Entry `json:"entries"`
	TotalCount   int     `json:"totalCount"`
	ErrorCount   int     `json:"errorCount"`
	WarningCount int     `json:"warningCount"`
}

// Log persists portal errors locally, bucketed per day and capped so the
// store can never grow without bound. Persistence is best effort: storage
// failures are logged and swallowed, never returned.
type Log struct {
	mu      sync.Mutex
	store   storage.Store
	logger  *zap.Logger
	maxAll  int
	maxDay  int
	maxDays int
	days    []DailyLog
	now     func() time.Time
}

// New loads any previously stored log. A corrupt stored value starts fresh.
func New(store storage.Store, cfg config.ErrorLogConfig, logger *zap.Logger) *Log {
	l := &Log{
		store:   store,
		logger:  logger,
		maxAll:  cfg.MaxEntries,
		maxDay:  cfg.MaxDailyEntries,
		maxDays: cfg.RetentionDays,
		now:     time.Now,
	}
	if l.maxAll <= 0 {
		l.maxAll = 1000
	}
	if l.maxDay <= 0 {
		l.maxDay = 100
	}
	if l.maxDays <= 0 {
		l.maxDays = 30
	}

	data, err := store.Get(context.Background(), storage.KeyErrorLogs)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("error log load failed", zap.Error(err))
		}
		return l
	}
	if err := json.Unmarshal(data, &l.days); err != nil {
		logger.Warn("error log corrupt, starting fresh", zap.Error(err))
		l.days = nil
	}
	return l
}

// Record appends an entry for the current day and persists the log.
func (l *Log) Record(level Level, message string, data map[string]interface{}) {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: l.nowFn(),
		Level:     level,
		Message:   message,
		Data:      data,
	}

	l.mu.Lock()
	l.add(entry)
	snapshot := l.snapshotLocked()
	l.mu.Unlock()

	l.echo(entry)
	l.persist(snapshot)
}

// RecordError is shorthand for an error-level entry carrying the cause.
func (l *Log) RecordError(message string, err error, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	if err != nil {
		data["cause"] = err.Error()
	}
	l.Record(LevelError, message, data)
}

// Dates returns every bucketed date, most recent first.
func (l *Log) Dates() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	dates := make([]string, 0, len(l.days))
	for _, day := range l.days {
		dates = append(dates, day.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// ForDate returns the bucket for a YYYY-MM-DD date.
func (l *Log) ForDate(date string) (DailyLog, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, day := range l.days {
		if day.Date == date {
			return day, true
		}
	}
	return DailyLog{}, false
}

// ClearDate drops the bucket for one date.
func (l *Log) ClearDate(date string) {
	l.mu.Lock()
	kept := l.days[:0]
	for _, day := range l.days {
		if day.Date != date {
			kept = append(kept, day)
		}
	}
	l.days = kept
	snapshot := l.snapshotLocked()
	l.mu.Unlock()
	l.persist(snapshot)
}

// ClearAll drops every bucket.
func (l *Log) ClearAll() {
	l.mu.Lock()
	l.days = nil
	snapshot := l.snapshotLocked()
	l.mu.Unlock()
	l.persist(snapshot)
}

// Export renders one day's bucket as plain text for download.
func (l *Log) Export(date string) (string, bool) {
	day, ok := l.ForDate(date)
	if !ok {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error Logs for %s\n", day.Date)
	fmt.Fprintf(&b, "Generated on: %s\n", l.nowFn().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Entries: %d\nErrors: %d\nWarnings: %d\n\n", day.TotalCount, day.ErrorCount, day.WarningCount)
	b.WriteString(strings.Repeat("=", 80))
	b.WriteString("\n")
	for _, entry := range day.Entries {
		fmt.Fprintf(&b, "[%s] %s %s\n", entry.Timestamp.Format(time.RFC3339), strings.ToUpper(string(entry.Level)), entry.Message)
		if len(entry.Data) > 0 {
			if encoded, err := json.Marshal(entry.Data); err == nil {
				fmt.Fprintf(&b, "  %s\n", encoded)
			}
		}
	}
	return b.String(), true
}

func (l *Log) add(entry Entry) {
	date := entry.Timestamp.Format("2006-01-02")

	idx := -1
	for i := range l.days {
		if l.days[i].Date == date {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.days = append(l.days, DailyLog{Date: date})
		idx = len(l.days) - 1
	}

	day := &l.days[idx]
	day.Entries = append([]Entry{entry}, day.Entries...)
	day.TotalCount++
	switch entry.Level {
	case LevelError:
		day.ErrorCount++
	case LevelWarn:
		day.WarningCount++
	}
	if len(day.Entries) > l.maxDay {
		day.Entries = day.Entries[:l.maxDay]
	}

	// Oldest days fall off first when retention or the global cap is hit.
	sort.Slice(l.days, func(i, j int) bool { return l.days[i].Date > l.days[j].Date })
	if len(l.days) > l.maxDays {
		l.days = l.days[:l.maxDays]
	}
	for l.entryCount() > l.maxAll && len(l.days) > 0 {
		last := &l.days[len(l.days)-1]
		if len(last.Entries) <= 1 {
			l.days = l.days[:len(l.days)-1]
			continue
		}
		last.Entries = last.Entries[:len(last.Entries)-1]
	}
}

func (l *Log) entryCount() int {
	total := 0
	for _, day := range l.days {
		total += len(day.Entries)
	}
	return total
}

func (l *Log) snapshotLocked() []DailyLog {
	snapshot := make([]DailyLog, len(l.days))
	copy(snapshot, l.days)
	return snapshot
}

func (l *Log) persist(days []DailyLog) {
	data, err := json.Marshal(days)
	if err != nil {
		l.logger.Warn("error log encode failed", zap.Error(err))
		return
	}
	if err := l.store.Set(context.Background(), storage.KeyErrorLogs, data); err != nil {
		l.logger.Warn("error log persist failed", zap.Error(err))
	}
}

func (l *Log) echo(entry Entry) {
	fields := []zap.Field{zap.String("entry_id", entry.ID)}
	if len(entry.Data) > 0 {
		fields = append(fields, zap.Any("data", entry.Data))
	}
	switch entry.Level {
	case LevelError:
		l.logger.Error(entry.Message, fields...)
	case LevelWarn:
		l.logger.Warn(entry.Message, fields...)
	case LevelDebug:
		l.logger.Debug(entry.Message, fields...)
	default:
		l.logger.Info(entry.Message, fields...)
	}
}

func (l *Log) nowFn() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}
