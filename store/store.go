package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goACL "github.com/MrEthical07/goACL"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport-level redis failures.
var ErrRedisUnavailable = errors.New("acl redis unavailable")

// removeRoleLua clears a role bit only when the member entry exists, so the
// existence check and the bit clear are one atomic step.
// KEYS[1] = member key
// ARGV[1] = redis bit offset
var removeRoleLua = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return {err='not_found'}
end
redis.call('SETBIT', KEYS[1], tonumber(ARGV[1]), 0)
return 1
`)

// RedisACLStore mirrors the goACL operations onto redis, one key per
// principal holding the encoded mask blob. Unlike the in-memory ACL, every
// operation takes a context and can fail with ErrRedisUnavailable.
type RedisACLStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisACLStore wraps a redis client. prefix namespaces the member keys;
// empty selects "goacl".
func NewRedisACLStore(client redis.UniversalClient, prefix string) *RedisACLStore {
	if prefix == "" {
		prefix = "goacl"
	}
	return &RedisACLStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisACLStore) key(p goACL.Principal) string {
	return s.prefix + ":member:" + string(p)
}

// bitOffset maps a role index to its SETBIT/GETBIT offset within the
// big-endian mask blob. Redis numbers bits from the most significant bit of
// the first byte; the blob stores word A (roles 0-63) then word B.
func bitOffset(role int) int64 {
	if role < 64 {
		return int64(63 - role)
	}
	return int64(191 - role)
}

// padBlob widens a short GET result to the full blob size. SETBIT only
// extends the value as far as the highest bit written, so trailing zero
// bytes may be absent.
func padBlob(data []byte) []byte {
	if len(data) >= goACL.MaskBlobSize {
		return data[:goACL.MaskBlobSize]
	}
	full := make([]byte, goACL.MaskBlobSize)
	copy(full, data)
	return full
}

// HasRole reports whether the principal holds the role. Missing entries hold
// no roles.
func (s *RedisACLStore) HasRole(ctx context.Context, p goACL.Principal, role int) (bool, error) {
	if role < 0 || role >= goACL.MaxRoles {
		return false, goACL.ErrInvalidRole
	}
	bit, err := s.redis.GetBit(ctx, s.key(p), bitOffset(role)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return bit == 1, nil
}

// AddRole sets the role bit, creating the entry if absent. Idempotent.
func (s *RedisACLStore) AddRole(ctx context.Context, p goACL.Principal, role int) error {
	if role < 0 || role >= goACL.MaxRoles {
		return goACL.ErrInvalidRole
	}
	if err := s.redis.SetBit(ctx, s.key(p), bitOffset(role), 1).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// RemoveRole clears the role bit. Bounds are checked before existence, same
// order as the in-memory ACL; revoking from an unknown principal is
// goACL.ErrMemberNotFound.
func (s *RedisACLStore) RemoveRole(ctx context.Context, p goACL.Principal, role int) error {
	if role < 0 || role >= goACL.MaxRoles {
		return goACL.ErrInvalidRole
	}

	err := removeRoleLua.Run(ctx, s.redis, []string{s.key(p)}, bitOffset(role)).Err()
	if err != nil {
		if err.Error() == "not_found" {
			return goACL.ErrMemberNotFound
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SetRoles unconditionally overwrites (or creates) the principal's mask.
// A zero mask still writes an explicit entry.
func (s *RedisACLStore) SetRoles(ctx context.Context, p goACL.Principal, mask goACL.Mask128) error {
	if err := s.redis.Set(ctx, s.key(p), goACL.EncodeMask(mask), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// RemoveMember deletes the principal's entry. goACL.ErrMemberNotFound when
// no entry exists.
func (s *RedisACLStore) RemoveMember(ctx context.Context, p goACL.Principal) error {
	deleted, err := s.redis.Del(ctx, s.key(p)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if deleted == 0 {
		return goACL.ErrMemberNotFound
	}
	return nil
}

// Permission returns the stored mask, or the zero mask for an absent
// principal.
func (s *RedisACLStore) Permission(ctx context.Context, p goACL.Principal) (goACL.Mask128, error) {
	data, err := s.redis.Get(ctx, s.key(p)).Bytes()
	if errors.Is(err, redis.Nil) {
		return goACL.Mask128{}, nil
	}
	if err != nil {
		return goACL.Mask128{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	mask, decErr := goACL.DecodeMask(padBlob(data))
	if decErr != nil {
		return goACL.Mask128{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, decErr)
	}
	return mask, nil
}

// Members scans all entries and returns a materialized snapshot. SCAN order;
// no ordering guarantee. Consistency under concurrent mutation follows
// redis SCAN semantics.
func (s *RedisACLStore) Members(ctx context.Context) ([]goACL.Member, error) {
	keyPrefix := s.prefix + ":member:"
	match := keyPrefix + "*"

	var out []goACL.Member
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, match, 64).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		for _, key := range keys {
			data, err := s.redis.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				// Entry removed between SCAN and GET.
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
			}
			mask, decErr := goACL.DecodeMask(padBlob(data))
			if decErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, decErr)
			}
			out = append(out, goACL.Member{
				Principal: goACL.Principal(strings.TrimPrefix(key, keyPrefix)),
				Mask:      mask,
			})
		}
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}
