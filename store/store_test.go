package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goACL "github.com/MrEthical07/goACL"
)

func newTestStore(t *testing.T) *RedisACLStore {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisACLStore(client, "goacl-test")
}

func TestStoreAbsentPrincipalHasNoRoles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	held, err := s.HasRole(ctx, "alice", 7)
	if err != nil {
		t.Fatalf("HasRole failed: %v", err)
	}
	if held {
		t.Fatal("absent principal holds a role")
	}

	mask, err := s.Permission(ctx, "alice")
	if err != nil {
		t.Fatalf("Permission failed: %v", err)
	}
	if !mask.IsZero() {
		t.Fatalf("absent principal has mask %s", mask)
	}
}

func TestStoreAddRoleGrantsExactlyOneBit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddRole(ctx, "alice", 42); err != nil {
		t.Fatalf("AddRole failed: %v", err)
	}

	for role := 0; role < goACL.MaxRoles; role++ {
		held, err := s.HasRole(ctx, "alice", role)
		if err != nil {
			t.Fatalf("HasRole(%d) failed: %v", role, err)
		}
		if held != (role == 42) {
			t.Fatalf("role %d: held=%v", role, held)
		}
	}
}

func TestStoreBitOffsetsMatchCodec(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Bits set through SETBIT must decode to the same mask the codec
	// produces, across both words and their boundaries.
	roles := []int{0, 7, 63, 64, 71, 127}
	for _, role := range roles {
		if err := s.AddRole(ctx, "alice", role); err != nil {
			t.Fatalf("AddRole(%d) failed: %v", role, err)
		}
	}

	mask, err := s.Permission(ctx, "alice")
	if err != nil {
		t.Fatalf("Permission failed: %v", err)
	}
	if want := goACL.MaskOf(roles...); !mask.Equal(want) {
		t.Fatalf("Permission = %s, want %s", mask, want)
	}

	// And the reverse: a codec-written blob must read back through GETBIT.
	if err := s.SetRoles(ctx, "bob", goACL.MaskOf(3, 100)); err != nil {
		t.Fatalf("SetRoles failed: %v", err)
	}
	for _, role := range []int{3, 100} {
		held, err := s.HasRole(ctx, "bob", role)
		if err != nil {
			t.Fatalf("HasRole(%d) failed: %v", role, err)
		}
		if !held {
			t.Fatalf("role %d not visible through HasRole", role)
		}
	}
}

func TestStoreRemoveRoleRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddRole(ctx, "alice", 5); err != nil {
		t.Fatalf("AddRole(5) failed: %v", err)
	}
	if err := s.AddRole(ctx, "alice", 90); err != nil {
		t.Fatalf("AddRole(90) failed: %v", err)
	}
	if err := s.RemoveRole(ctx, "alice", 5); err != nil {
		t.Fatalf("RemoveRole failed: %v", err)
	}

	held, err := s.HasRole(ctx, "alice", 5)
	if err != nil {
		t.Fatalf("HasRole failed: %v", err)
	}
	if held {
		t.Fatal("role 5 still held after removal")
	}
	held, err = s.HasRole(ctx, "alice", 90)
	if err != nil {
		t.Fatalf("HasRole failed: %v", err)
	}
	if !held {
		t.Fatal("removal of role 5 disturbed role 90")
	}
}

func TestStoreRemoveRoleUnknownPrincipal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RemoveRole(ctx, "ghost", 1); !errors.Is(err, goACL.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestStoreBoundsCheckPrecedesExistenceCheck(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RemoveRole(ctx, "ghost", 200); !errors.Is(err, goACL.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := s.HasRole(ctx, "alice", goACL.MaxRoles); !errors.Is(err, goACL.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := s.AddRole(ctx, "alice", -1); !errors.Is(err, goACL.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestStoreSetRolesOverwritesAndZeroMaskPersists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddRole(ctx, "alice", 1); err != nil {
		t.Fatalf("AddRole failed: %v", err)
	}
	want := goACL.MaskOf(10, 20, 127)
	if err := s.SetRoles(ctx, "alice", want); err != nil {
		t.Fatalf("SetRoles failed: %v", err)
	}
	mask, err := s.Permission(ctx, "alice")
	if err != nil {
		t.Fatalf("Permission failed: %v", err)
	}
	if !mask.Equal(want) {
		t.Fatalf("Permission = %s, want %s", mask, want)
	}

	// A zero mask keeps the entry: it still satisfies RemoveMember.
	if err := s.SetRoles(ctx, "bob", goACL.Mask128{}); err != nil {
		t.Fatalf("SetRoles failed: %v", err)
	}
	if err := s.RemoveMember(ctx, "bob"); err != nil {
		t.Fatalf("RemoveMember on zero-mask entry failed: %v", err)
	}
}

func TestStoreRemoveMember(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddRole(ctx, "alice", 64); err != nil {
		t.Fatalf("AddRole failed: %v", err)
	}
	if err := s.RemoveMember(ctx, "alice"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	held, err := s.HasRole(ctx, "alice", 64)
	if err != nil {
		t.Fatalf("HasRole failed: %v", err)
	}
	if held {
		t.Fatal("removed member still holds a role")
	}
	if err := s.RemoveMember(ctx, "alice"); !errors.Is(err, goACL.ErrMemberNotFound) {
		t.Fatalf("second RemoveMember: expected ErrMemberNotFound, got %v", err)
	}
	if err := s.RemoveRole(ctx, "alice", 64); !errors.Is(err, goACL.ErrMemberNotFound) {
		t.Fatalf("RemoveRole after removal: expected ErrMemberNotFound, got %v", err)
	}
}

func TestStoreMembersScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, role := range []int{1, 2, 12, 88, 99, 123} {
		if err := s.AddRole(ctx, "A", role); err != nil {
			t.Fatalf("AddRole(%d) failed: %v", role, err)
		}
	}
	if err := s.RemoveRole(ctx, "A", 2); err != nil {
		t.Fatalf("RemoveRole(2) failed: %v", err)
	}
	if err := s.SetRoles(ctx, "B", goACL.MaskOf(0)); err != nil {
		t.Fatalf("SetRoles failed: %v", err)
	}

	members, err := s.Members(ctx)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	byPrincipal := make(map[goACL.Principal]goACL.Mask128, len(members))
	for _, m := range members {
		byPrincipal[m.Principal] = m.Mask
	}
	if mask, ok := byPrincipal["A"]; !ok || !mask.Equal(goACL.MaskOf(1, 12, 88, 99, 123)) {
		t.Fatalf("member A mask = %s", mask)
	}
	if mask, ok := byPrincipal["B"]; !ok || !mask.Equal(goACL.MaskOf(0)) {
		t.Fatalf("member B mask = %s", mask)
	}
}

func TestStoreUnavailableRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRedisACLStore(client, "goacl-test")
	mr.Close()

	ctx := context.Background()
	if err := s.AddRole(ctx, "alice", 1); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := s.Permission(ctx, "alice"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := s.Members(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
