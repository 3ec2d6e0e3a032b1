// Package goACL provides an in-memory, principal-keyed access control list with
// bitmask-encoded roles, an optional Redis-backed store, and audit/metrics hooks.
//
// Each principal maps to a [Mask128]: a 128-bit permission mask in which bit r
// represents role r. Grants, revocations, checks, and bulk assignment are O(1)
// bit operations on that mask.
//
// # Architecture boundaries
//
// goACL is the public surface. It exposes [ACL], [Mask128], [Member], [Config],
// and the audit/metrics value types. The Redis mirror lives in the store
// subpackage and depends on this package, never the reverse.
//
// # Concurrency contract
//
// An [ACL] has no internal locking and assumes single-writer-at-a-time
// semantics per instance: the embedding system serializes mutations. Metrics
// counters are atomic and audit emission goes through a buffered dispatcher,
// so instrumentation never adds a lock to the hot path.
//
// # What this package must NOT do
//
//   - Authenticate principals or interpret their identity beyond equality.
//   - Perform I/O from ACL methods (persistence is the store subpackage's job).
//   - Widen or truncate masks: every role index is validated against the
//     128-bit mask width before any bit is shifted.
package goACL
