package goACL

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Audit actions, one per mutating ACL operation.
const (
	ActionRoleGranted   = "acl.role_granted"
	ActionRoleRevoked   = "acl.role_revoked"
	ActionRolesSet      = "acl.roles_set"
	ActionMemberRemoved = "acl.member_removed"
)

// AuditEvent records one ACL mutation attempt, successful or not.
type AuditEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Principal Principal `json:"principal"`
	// Role is the role index the operation targeted, or -1 for whole-entry
	// operations (roles_set, member_removed).
	Role int `json:"role"`
	// Mask is the hex-rendered resulting mask. Empty on failed mutations.
	Mask    string `json:"mask,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuditSink receives ACL mutation events. Emit must be safe for concurrent
// use; it is called from the dispatcher goroutine, never from ACL methods.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a channel for the host to drain.
type ChannelSink struct {
	events chan AuditEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to the wrapped writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// stamp fills the identity fields the ACL leaves blank.
func stamp(event AuditEvent) AuditEvent {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return event
}
