package enricher

import (
	"fmt"
	"sync"

	"github.com/erraggy/raml2obj/raml"
)

// logRecord is one captured log call.
type logRecord struct {
	level string
	msg   string
	attrs map[string]any
}

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      *sync.Mutex
	records *[]logRecord
	with    []any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, records: &[]logRecord{}}
}

func (l *recordingLogger) record(level, msg string, attrs []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]any{}, l.with...), attrs...)
	m := make(map[string]any, len(all)/2)
	for i := 0; i+1 < len(all); i += 2 {
		m[fmt.Sprint(all[i])] = all[i+1]
	}
	*l.records = append(*l.records, logRecord{level: level, msg: msg, attrs: m})
}

func (l *recordingLogger) Debug(msg string, attrs ...any) { l.record("debug", msg, attrs) }
func (l *recordingLogger) Info(msg string, attrs ...any)  { l.record("info", msg, attrs) }
func (l *recordingLogger) Warn(msg string, attrs ...any)  { l.record("warn", msg, attrs) }
func (l *recordingLogger) Error(msg string, attrs ...any) { l.record("error", msg, attrs) }

func (l *recordingLogger) With(attrs ...any) raml.Logger {
	return &recordingLogger{mu: l.mu, records: l.records, with: append(append([]any{}, l.with...), attrs...)}
}

// at returns the records logged at level.
func (l *recordingLogger) at(level string) []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logRecord
	for _, r := range *l.records {
		if r.level == level {
			out = append(out, r)
		}
	}
	return out
}
