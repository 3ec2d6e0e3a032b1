// Package store provides a Redis-backed mirror of the goACL operations for
// hosts that need permission masks shared across processes or surviving
// restarts.
//
// Each principal maps to one key holding the 16-byte big-endian mask blob
// produced by [goACL.EncodeMask]. Grants and revocations are SETBIT
// operations on that blob, membership checks are GETBIT, so per-role
// mutations never read-modify-write the whole mask. Revocation is
// existence-gated through a Lua script to preserve the member-not-found
// contract atomically.
//
// The store carries the same error taxonomy as the core ACL
// (goACL.ErrInvalidRole, goACL.ErrMemberNotFound) plus [ErrRedisUnavailable]
// for transport failures.
package store
