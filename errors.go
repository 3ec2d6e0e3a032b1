package goACL

import "errors"

var (
	// ErrInvalidRole is returned when a role index outside [0, MaxRoles) is
	// supplied to an operation that validates bounds. The operation has no
	// effect on ACL state.
	ErrInvalidRole = errors.New("invalid role index")
	// ErrMemberNotFound is returned when a destructive operation targets a
	// principal with no stored entry. The ACL state is left unchanged.
	ErrMemberNotFound = errors.New("member not found")
	// ErrAuditBufferSize is returned by Config.Validate when audit is enabled
	// with a non-positive buffer size.
	ErrAuditBufferSize = errors.New("audit buffer size must be positive")
	// ErrNilAuditSink is returned by Config.Validate when audit is enabled
	// without a sink.
	ErrNilAuditSink = errors.New("audit enabled with nil sink")
)
