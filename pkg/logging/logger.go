package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// New creates a logger writing entries in the given format
func New(writer io.Writer, level Level, format Format) *LineLogger {
	return &LineLogger{
		writer: writer,
		format: format,
		level:  &levelVar{level: level},
		fields: make([]Field, 0),
		mu:     &sync.Mutex{},
	}
}

// log is the internal logging method
func (l *LineLogger) log(level Level, msg string, fields ...Field) {
	if level < l.GetLevel() {
		return
	}

	fieldMap := make(map[string]any, len(l.fields)+len(fields))
	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}
	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	var line []byte
	switch l.format {
	case FormatText:
		line = textLine(now, level, msg, fieldMap)
	default:
		entry := LogEntry{
			Time:    now,
			Level:   level.String(),
			Message: msg,
		}
		if len(fieldMap) > 0 {
			entry.Fields = fieldMap
		}
		data, err := json.Marshal(entry)
		if err != nil {
			// Fallback to simple text logging if JSON marshal fails
			line = []byte(fmt.Sprintf("[ERROR] Failed to marshal log entry: %v", err))
		} else {
			line = data
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(append(line, '\n'))
}

func textLine(now string, level Level, msg string, fields map[string]any) []byte {
	var b strings.Builder
	b.WriteString(now)
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := fmt.Sprint(fields[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	return []byte(b.String())
}

// Debug logs a debug-level message
func (l *LineLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *LineLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *LineLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *LineLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set
func (l *LineLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &LineLogger{
		writer: l.writer,
		format: l.format,
		level:  l.level,
		fields: newFields,
		mu:     l.mu,
	}
}

// SetLevel sets the minimum log level for this logger and its children
func (l *LineLogger) SetLevel(level Level) {
	l.level.mu.Lock()
	defer l.level.mu.Unlock()
	l.level.level = level
}

// GetLevel returns the current log level
func (l *LineLogger) GetLevel() Level {
	l.level.mu.RLock()
	defer l.level.mu.RUnlock()
	return l.level.level
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: OrNop(logger),
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation with its duration and returns it
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	all := append(append([]Field{}, t.fields...), fields...)
	t.logger.Info(t.msg, append(all, Latency(elapsed))...)
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	all := append([]Field{}, t.fields...)
	t.logger.Error(t.msg, append(all, Latency(elapsed), Error(err))...)
	return elapsed
}
