package goACL

import "context"

// Principal identifies a role holder. It is opaque: the ACL compares
// principals only for equality and attaches no other meaning (an account
// address, a user ID, a service name).
type Principal string

// Member is an immutable snapshot of one ACL entry, produced by enumeration.
type Member struct {
	Principal Principal
	Mask      Mask128
}

// ACL maps principals to 128-bit permission masks. The zero value is not
// usable; construct with [New] or [NewWithConfig].
//
// All mutation goes through ACL methods: role indices are validated against
// the mask width before any bit is touched, so no stored mask ever has a bit
// set at position >= MaxRoles.
type ACL struct {
	entries map[Principal]Mask128

	metrics    *Metrics
	dispatcher *auditDispatcher
}

// New returns an ACL with an empty mapping and no instrumentation.
// Allocation-only: it never fails and performs no I/O.
func New() *ACL {
	return &ACL{entries: make(map[Principal]Mask128)}
}

// NewWithConfig returns an ACL instrumented per cfg: mutation audit events
// flow to cfg.Audit.Sink through an async dispatcher, and operation counters
// are recorded when cfg.Metrics.Enabled. Call [ACL.Close] when done to flush
// the dispatcher.
func NewWithConfig(cfg Config) (*ACL, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := New()
	a.metrics = NewMetrics(cfg.Metrics)
	a.dispatcher = newAuditDispatcher(cfg.Audit)
	return a, nil
}

// Close flushes and stops the audit dispatcher. Safe on an uninstrumented ACL.
func (a *ACL) Close() {
	a.dispatcher.Close()
}

// HasRole reports whether the principal holds the given role. An absent
// principal holds no roles; that is a false result, not an error.
// Returns ErrInvalidRole for role indices outside [0, MaxRoles).
func (a *ACL) HasRole(p Principal, role int) (bool, error) {
	if err := validRole(role); err != nil {
		a.metrics.Inc(MetricInvalidRole)
		return false, err
	}
	a.metrics.Inc(MetricRoleCheck)
	return a.entries[p].Has(role), nil
}

// SetRoles unconditionally overwrites (or creates) the principal's entire
// mask. A zero mask still creates an explicit entry: the principal holds no
// roles but is present for RemoveRole/RemoveMember purposes.
func (a *ACL) SetRoles(p Principal, mask Mask128) {
	a.entries[p] = mask
	a.metrics.Inc(MetricRolesSet)
	a.audit(AuditEvent{Action: ActionRolesSet, Principal: p, Role: -1, Mask: mask.String(), Success: true})
}

// AddRole sets the role bit in the principal's mask, creating the entry if
// absent. Idempotent: granting an already-held role changes nothing.
// Returns ErrInvalidRole for role indices outside [0, MaxRoles).
func (a *ACL) AddRole(p Principal, role int) error {
	if err := validRole(role); err != nil {
		a.metrics.Inc(MetricInvalidRole)
		a.audit(AuditEvent{Action: ActionRoleGranted, Principal: p, Role: role, Error: err.Error()})
		return err
	}
	mask := a.entries[p]
	mask.Set(role)
	a.entries[p] = mask
	a.metrics.Inc(MetricRoleGranted)
	a.audit(AuditEvent{Action: ActionRoleGranted, Principal: p, Role: role, Mask: mask.String(), Success: true})
	return nil
}

// RemoveRole clears the role bit in the principal's mask. The bounds check
// runs before the existence check: RemoveRole(p, 200) reports ErrInvalidRole
// even for an unknown principal. Revoking from a principal with no entry is
// ErrMemberNotFound rather than a silent no-op; clearing an unset bit on an
// existing member succeeds and changes nothing.
func (a *ACL) RemoveRole(p Principal, role int) error {
	if err := validRole(role); err != nil {
		a.metrics.Inc(MetricInvalidRole)
		a.audit(AuditEvent{Action: ActionRoleRevoked, Principal: p, Role: role, Error: err.Error()})
		return err
	}
	mask, ok := a.entries[p]
	if !ok {
		a.metrics.Inc(MetricMemberNotFound)
		a.audit(AuditEvent{Action: ActionRoleRevoked, Principal: p, Role: role, Error: ErrMemberNotFound.Error()})
		return ErrMemberNotFound
	}
	mask.Clear(role)
	a.entries[p] = mask
	a.metrics.Inc(MetricRoleRevoked)
	a.audit(AuditEvent{Action: ActionRoleRevoked, Principal: p, Role: role, Mask: mask.String(), Success: true})
	return nil
}

// RemoveMember deletes the principal's entry entirely. Returns
// ErrMemberNotFound if no entry exists. After removal the principal behaves
// as any absent principal: no roles, zero permission mask.
func (a *ACL) RemoveMember(p Principal) error {
	if _, ok := a.entries[p]; !ok {
		a.metrics.Inc(MetricMemberNotFound)
		a.audit(AuditEvent{Action: ActionMemberRemoved, Principal: p, Role: -1, Error: ErrMemberNotFound.Error()})
		return ErrMemberNotFound
	}
	delete(a.entries, p)
	a.metrics.Inc(MetricMemberRemoved)
	a.audit(AuditEvent{Action: ActionMemberRemoved, Principal: p, Role: -1, Success: true})
	return nil
}

// Members returns a materialized snapshot of all entries at call time.
// Order is map-iteration order; no ordering is part of the contract.
func (a *ACL) Members() []Member {
	a.metrics.Inc(MetricMembersSnapshot)
	out := make([]Member, 0, len(a.entries))
	for p, mask := range a.entries {
		out = append(out, Member{Principal: p, Mask: mask})
	}
	return out
}

// Permission returns the principal's stored mask, or the zero mask if the
// principal has no entry. Never fails.
func (a *ACL) Permission(p Principal) Mask128 {
	a.metrics.Inc(MetricPermissionRead)
	return a.entries[p]
}

// Len returns the number of explicit entries, including zero-mask entries.
func (a *ACL) Len() int {
	return len(a.entries)
}

// MetricsSnapshot returns the current operation counters. Empty maps when
// metrics are disabled or the ACL was built with [New].
func (a *ACL) MetricsSnapshot() MetricsSnapshot {
	return a.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped under
// backpressure.
func (a *ACL) AuditDropped() uint64 {
	return a.dispatcher.Dropped()
}

func (a *ACL) audit(event AuditEvent) {
	a.dispatcher.Emit(context.Background(), event)
}

func validRole(role int) error {
	if role < 0 || role >= MaxRoles {
		return ErrInvalidRole
	}
	return nil
}
