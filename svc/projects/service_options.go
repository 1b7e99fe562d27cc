package projects

import "log/slog"

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxSuffixAttempts bounds the numeric suffix search for derived keys.
// Exceeding it yields projectkey.ErrExhaustedKeySpace. Zero means unbounded.
func WithMaxSuffixAttempts(n int) ServiceOption {
	return func(s *service) {
		if n >= 0 {
			s.maxSuffixAttempts = n
		}
	}
}

// WithBackfillConcurrency sets how many name groups the backfill processes
// at once. Projects whose names derive the same base key always share a
// worker, so their keys come out in list order. Values below 1 mean 1.
func WithBackfillConcurrency(n int) ServiceOption {
	return func(s *service) {
		s.concurrency = max(n, 1)
	}
}

// WithBackfillLocker makes Backfill hold a lock for the whole run.
func WithBackfillLocker(l Locker) ServiceOption {
	return func(s *service) {
		s.locker = l
	}
}
