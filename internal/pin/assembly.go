package pin

import (
	"strconv"
	"strings"
)

// Pair is the pin stack of one chamber when a lock is keyed to both a master
// and a child. Bottom is the pin both keys lift; Middle is the spacer that
// separates the child's shear line from the master's.
type Pair struct {
	Bottom int
	Middle int
}

// Height returns Bottom + Middle, the depth of the deeper of the two keys.
func (p Pair) Height() int {
	return p.Bottom + p.Middle
}

// Assembly is the per-pin split for one (master, child) pair of keys.
type Assembly []Pair

// ComputeAssembly splits every chamber for master and child:
//
//	bottom = min(master[i], child[i])
//	middle = |master[i] - child[i]|
//
// Keys of different length only produce pairs for their common prefix.
func ComputeAssembly(master, child Key) Assembly {
	n := min(master.Len(), child.Len())
	asm := make(Assembly, n)
	for i := 0; i < n; i++ {
		m, c := master.Pin(i), child.Pin(i)
		asm[i] = Pair{
			Bottom: min(m, c),
			Middle: abs(m - c),
		}
	}
	return asm
}

// IsValidChild reports whether child, whose split against the top master is
// asm, can also be operated by candidate. Every pin of candidate has to land
// on either the bottom pin alone or the bottom+middle stack; one miss
// rejects the whole key.
func IsValidChild(candidate, child Key, asm Assembly) bool {
	if candidate.Len() != len(asm) || child.Len() != len(asm) {
		return false
	}
	for i, p := range asm {
		d := candidate.Pin(i)
		if d != p.Bottom && d != p.Height() {
			return false
		}
	}
	return true
}

// String renders the assembly as "(1 + 0)(2 + 1)...".
func (a Assembly) String() string {
	var sb strings.Builder
	for _, p := range a {
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(p.Bottom))
		sb.WriteString(" + ")
		sb.WriteString(strconv.Itoa(p.Middle))
		sb.WriteByte(')')
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
