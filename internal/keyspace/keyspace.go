// Package keyspace enumerates every key a lock system can cut and keeps each
// key's pin assembly against the master in enumeration order.
package keyspace

import (
	"errors"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/masterkey/internal/pin"
)

// MaxKeys caps the size of an enumerated key space (maxDepth^pins).
const MaxKeys = 10_000_000

var (
	// ErrInvalidDepth is returned when the maximum pin depth is out of range.
	ErrInvalidDepth = errors.New("invalid maximum pin depth")

	// ErrInvalidMaster is returned when the master key has no pins.
	ErrInvalidMaster = errors.New("invalid master key")

	// ErrKeySpaceTooLarge is returned when maxDepth^pins exceeds MaxKeys.
	ErrKeySpaceTooLarge = errors.New("key space too large")
)

// KeySpace maps every key in [1, maxDepth]^pins to its assembly against the
// master. Iteration follows insertion order, which is lexicographic.
type KeySpace struct {
	master   pin.Key
	maxDepth int
	entries  *orderedmap.OrderedMap[pin.Key, pin.Assembly]
}

// Size returns maxDepth^pins. The boolean is false when the result would
// exceed MaxKeys.
func Size(pins, maxDepth int) (int, bool) {
	if pins <= 0 || maxDepth <= 0 {
		return 0, true
	}
	total := 1
	for i := 0; i < pins; i++ {
		total *= maxDepth
		if total > MaxKeys {
			return 0, false
		}
	}
	return total, true
}

// Enumerate generates every key with the master's pin count and each pin in
// [1, maxDepth], computing its assembly against master. Keys are produced
// like an odometer (last pin turns fastest), so iteration order is
// lexicographic and reproducible.
func Enumerate(master pin.Key, maxDepth int) (*KeySpace, error) {
	if master.IsZero() {
		return nil, fmt.Errorf("%w: master has no pins", ErrInvalidMaster)
	}
	if maxDepth < 1 || maxDepth > pin.MaxDepth {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidDepth, maxDepth, pin.MaxDepth)
	}
	if _, ok := Size(master.Len(), maxDepth); !ok {
		return nil, fmt.Errorf("%w: %d^%d exceeds %d keys", ErrKeySpaceTooLarge, maxDepth, master.Len(), MaxKeys)
	}

	ks := &KeySpace{
		master:   master,
		maxDepth: maxDepth,
		entries:  orderedmap.NewOrderedMap[pin.Key, pin.Assembly](),
	}

	depths := make([]int, master.Len())
	for i := range depths {
		depths[i] = 1
	}

	for {
		key := pin.MustKey(depths...)
		ks.entries.Set(key, pin.ComputeAssembly(master, key))

		if !advance(depths, maxDepth) {
			break
		}
	}

	return ks, nil
}

// advance moves depths to the next key in lexicographic order and reports
// whether one exists.
func advance(depths []int, maxDepth int) bool {
	for i := len(depths) - 1; i >= 0; i-- {
		if depths[i] < maxDepth {
			depths[i]++
			return true
		}
		depths[i] = 1
	}
	return false
}

// Master returns the key the assemblies were computed against.
func (ks *KeySpace) Master() pin.Key {
	return ks.master
}

// MaxDepth returns the deepest enumerated pin cut.
func (ks *KeySpace) MaxDepth() int {
	return ks.maxDepth
}

// Len returns the number of keys, master included.
func (ks *KeySpace) Len() int {
	return ks.entries.Len()
}

// Assembly returns the assembly recorded for key.
func (ks *KeySpace) Assembly(key pin.Key) (pin.Assembly, bool) {
	return ks.entries.Get(key)
}

// Contains reports whether key was enumerated.
func (ks *KeySpace) Contains(key pin.Key) bool {
	_, ok := ks.entries.Get(key)
	return ok
}

// Each calls fn for every key in enumeration order until fn returns false.
func (ks *KeySpace) Each(fn func(key pin.Key, asm pin.Assembly) bool) {
	for el := ks.entries.Front(); el != nil; el = el.Next() {
		if !fn(el.Key, el.Value) {
			return
		}
	}
}

// Children returns every key except the master, in enumeration order.
func (ks *KeySpace) Children() []pin.Key {
	keys := make([]pin.Key, 0, ks.entries.Len())
	ks.Each(func(key pin.Key, _ pin.Assembly) bool {
		if key != ks.master {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}
