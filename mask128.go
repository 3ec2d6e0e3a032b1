package goACL

import (
	"fmt"
	"math/bits"
)

// MaxRoles is the number of role slots in a permission mask. Role indices
// are valid in [0, MaxRoles).
const MaxRoles = 128

// Mask128 is a 128-bit permission mask supporting up to 128 roles.
// A holds bits 0-63, B holds bits 64-127. The zero value is the empty mask.
type Mask128 struct {
	A uint64
	B uint64
}

// MaskOf returns a mask with the given bits set. Out-of-range bits are
// ignored; callers that need validation use the ACL operations.
func MaskOf(roleBits ...int) Mask128 {
	var m Mask128
	for _, bit := range roleBits {
		m.Set(bit)
	}
	return m
}

// Has reports whether the given bit is set.
func (m Mask128) Has(bit int) bool {
	if bit < 0 || bit >= MaxRoles {
		return false
	}
	if bit < 64 {
		return (m.A & (1 << bit)) != 0
	}
	return (m.B & (1 << (bit - 64))) != 0
}

// Set sets the given bit in the mask.
func (m *Mask128) Set(bit int) {
	if bit < 0 || bit >= MaxRoles {
		return
	}
	if bit < 64 {
		m.A |= (1 << bit)
	} else {
		m.B |= (1 << (bit - 64))
	}
}

// Clear clears the given bit in the mask.
func (m *Mask128) Clear(bit int) {
	if bit < 0 || bit >= MaxRoles {
		return
	}
	if bit < 64 {
		m.A &^= (1 << bit)
	} else {
		m.B &^= (1 << (bit - 64))
	}
}

// Equal reports whether both masks have the same bits set.
func (m Mask128) Equal(other Mask128) bool {
	return m.A == other.A && m.B == other.B
}

// IsZero reports whether no bits are set.
func (m Mask128) IsZero() bool {
	return m.A == 0 && m.B == 0
}

// Count returns the number of set bits.
func (m Mask128) Count() int {
	return bits.OnesCount64(m.A) + bits.OnesCount64(m.B)
}

// Bits returns the set bit positions in ascending order.
func (m Mask128) Bits() []int {
	out := make([]int, 0, m.Count())
	for bit := 0; bit < 64; bit++ {
		if (m.A & (1 << bit)) != 0 {
			out = append(out, bit)
		}
	}
	for bit := 0; bit < 64; bit++ {
		if (m.B & (1 << bit)) != 0 {
			out = append(out, bit+64)
		}
	}
	return out
}

// String renders the mask as 32 hex digits, most significant word first.
func (m Mask128) String() string {
	return fmt.Sprintf("%016x%016x", m.B, m.A)
}
