package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ProjectID records the project identifier under the key "project_id".
// If id is nil, it returns an empty Attr.
func ProjectID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("project_id", id)
}

// ProjectKey records a project key under the key "project_key".
// Empty keys are omitted.
func ProjectKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("project_key", key)
}

// Provenance records where a key came from under the key "provenance".
func Provenance(p string) slog.Attr {
	return slog.String("provenance", p)
}

// Reason records a failure reason code under the key "reason".
// Empty reasons are omitted.
func Reason(r string) slog.Attr {
	if r == "" {
		return slog.Attr{}
	}
	return slog.String("reason", r)
}

// Attempt records a 1-based attempt number under the key "attempt".
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Count records a counter under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
