package logger

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

// TestLogger routes log lines through t.Logf
type TestLogger struct {
	T      *testing.T
	fields string
}

// NewTestLogger creates a new test logger
func NewTestLogger(t *testing.T) Logger {
	return &TestLogger{T: t}
}

func (l *TestLogger) log(level, msg string) {
	if l.T != nil {
		l.T.Helper()
		l.T.Logf("[%s] %s%s", level, msg, l.fields)
	}
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &TestLogger{T: l.T, fields: l.fields + fmt.Sprintf(" %s=%v", key, value)}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(l.fields)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return &TestLogger{T: l.T, fields: b.String()}
}
