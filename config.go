package goACL

// Config carries the instrumentation settings for an ACL built with
// [NewWithConfig]. The zero value is valid: audit and metrics both off.
type Config struct {
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher attached to ACL mutations.
type AuditConfig struct {
	Enabled bool
	// Sink receives every mutation event. Required when Enabled.
	Sink AuditSink
	// BufferSize is the dispatcher channel capacity. Must be positive when
	// Enabled.
	BufferSize int
	// DropIfFull makes Emit drop events (and count them) instead of blocking
	// when the buffer is full. Keeps mutations non-blocking under a slow sink.
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the atomic operation counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns an instrumented-but-quiet baseline: metrics on,
// audit off.
func DefaultConfig() Config {
	return Config{
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate reports the first configuration problem found, or nil.
func (c Config) Validate() error {
	if c.Audit.Enabled {
		if c.Audit.Sink == nil {
			return ErrNilAuditSink
		}
		if c.Audit.BufferSize <= 0 {
			return ErrAuditBufferSize
		}
	}
	return nil
}
