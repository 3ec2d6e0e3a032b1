package goACL

import "sync/atomic"

// MetricID identifies one operation counter.
type MetricID uint16

const (
	// MetricRoleGranted counts successful AddRole operations.
	MetricRoleGranted MetricID = iota
	// MetricRoleRevoked counts successful RemoveRole operations.
	MetricRoleRevoked
	// MetricRolesSet counts SetRoles operations.
	MetricRolesSet
	// MetricMemberRemoved counts successful RemoveMember operations.
	MetricMemberRemoved
	// MetricRoleCheck counts HasRole queries with a valid role index.
	MetricRoleCheck
	// MetricPermissionRead counts Permission reads.
	MetricPermissionRead
	// MetricMembersSnapshot counts Members enumerations.
	MetricMembersSnapshot
	// MetricInvalidRole counts operations rejected with ErrInvalidRole.
	MetricInvalidRole
	// MetricMemberNotFound counts operations rejected with ErrMemberNotFound.
	MetricMemberNotFound
	metricIDCount
)

const cacheLineSize = 64

// paddedCounter keeps each counter on its own cache line so concurrent
// readers (exporters) never contend with the writer.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of atomic operation counters. A nil or disabled
// Metrics is valid and inert.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter. Safe from any goroutine.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every counter. Disabled or nil Metrics yield an empty map.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}

	s := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return s
}
