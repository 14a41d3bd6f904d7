// Package pin provides the numeric model of a pin-tumbler key: keys, the
// bottom/middle pin split a child key needs against a master, and the rule
// deciding whether a child can live under a given master.
package pin

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxPins is the longest key the model supports.
	MaxPins = 12

	// MaxDepth is the deepest cut a single pin can carry.
	MaxDepth = 255
)

// Key is one physical key: the cut depth of every pin along the blade.
// It is a comparable value type so it can be used directly as a map key.
type Key struct {
	n    uint8
	pins [MaxPins]uint8
}

// NewKey builds a Key from pin depths. Every depth must be in [1, MaxDepth]
// and the key must have between 1 and MaxPins pins.
func NewKey(depths ...int) (Key, error) {
	var k Key
	if len(depths) == 0 {
		return k, fmt.Errorf("key has no pins")
	}
	if len(depths) > MaxPins {
		return k, fmt.Errorf("key has %d pins, at most %d are supported", len(depths), MaxPins)
	}
	for i, d := range depths {
		if d < 1 || d > MaxDepth {
			return k, fmt.Errorf("pin %d has depth %d, must be between 1 and %d", i+1, d, MaxDepth)
		}
		k.pins[i] = uint8(d)
	}
	k.n = uint8(len(depths))
	return k, nil
}

// MustKey is like NewKey but panics on invalid input.
// Intended for constants and tests.
func MustKey(depths ...int) Key {
	k, err := NewKey(depths...)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseKey parses a key written as pin depths separated by commas and/or
// whitespace, optionally wrapped in braces: "1,2,3", "1 2 3" or "{ 1 2 3 }".
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	depths := make([]int, 0, len(fields))
	for _, f := range fields {
		d, err := strconv.Atoi(f)
		if err != nil {
			return Key{}, fmt.Errorf("invalid pin depth %q: %w", f, err)
		}
		depths = append(depths, d)
	}
	return NewKey(depths...)
}

// Len returns the number of pins.
func (k Key) Len() int {
	return int(k.n)
}

// Pin returns the depth of pin i (zero-based).
func (k Key) Pin(i int) int {
	return int(k.pins[i])
}

// IsZero reports whether k is the zero Key (no pins).
func (k Key) IsZero() bool {
	return k.n == 0
}

// Compare orders keys lexicographically by pin depth; a shorter key that is
// a prefix of a longer one sorts first.
func (k Key) Compare(other Key) int {
	n := min(k.n, other.n)
	for i := uint8(0); i < n; i++ {
		switch {
		case k.pins[i] < other.pins[i]:
			return -1
		case k.pins[i] > other.pins[i]:
			return 1
		}
	}
	switch {
	case k.n < other.n:
		return -1
	case k.n > other.n:
		return 1
	}
	return 0
}

// String renders the key as "{ 1 2 3 }".
func (k Key) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i := 0; i < k.Len(); i++ {
		sb.WriteString(strconv.Itoa(k.Pin(i)))
		sb.WriteByte(' ')
	}
	sb.WriteByte('}')
	return sb.String()
}

// Compact renders the key as "{1 2 3}".
func (k Key) Compact() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < k.Len(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(k.Pin(i)))
	}
	sb.WriteByte('}')
	return sb.String()
}
