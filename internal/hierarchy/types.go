package hierarchy

import (
	"fmt"

	"github.com/dbsmedya/masterkey/internal/keyspace"
	"github.com/dbsmedya/masterkey/internal/pin"
)

// Secondary is an intermediate master and the child keys assigned to it.
type Secondary struct {
	Key      pin.Key
	Children []pin.Key
}

// TwoLevel is the outcome of a two-level partition.
type TwoLevel struct {
	Master      pin.Key
	Secondaries []*Secondary // selection order
	Unassigned  []pin.Key    // children no secondary master can operate
	Pool        int          // children left after removing the secondaries
	Clamped     bool         // every candidate became a secondary master
}

// Assigned returns how many children were placed under a secondary master.
func (t *TwoLevel) Assigned() int {
	total := 0
	for _, sec := range t.Secondaries {
		total += len(sec.Children)
	}
	return total
}

// Verify checks that the partition covers the key space's children exactly
// once: secondaries, assigned children and unassigned keys together must
// equal the key space minus the master, without duplicates.
func (t *TwoLevel) Verify(ks *keyspace.KeySpace) error {
	seen := make(map[pin.Key]string, ks.Len())

	mark := func(key pin.Key, role string) error {
		if key == t.Master {
			return fmt.Errorf("master %s appears as %s", key, role)
		}
		if !ks.Contains(key) {
			return fmt.Errorf("%s %s is not in the key space", role, key)
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("key %s appears as both %s and %s", key, prev, role)
		}
		seen[key] = role
		return nil
	}

	for _, sec := range t.Secondaries {
		if err := mark(sec.Key, "secondary master"); err != nil {
			return err
		}
	}
	for _, sec := range t.Secondaries {
		for _, child := range sec.Children {
			if err := mark(child, "child of "+sec.Key.String()); err != nil {
				return err
			}
		}
	}
	for _, key := range t.Unassigned {
		if err := mark(key, "unassigned"); err != nil {
			return err
		}
	}

	children := ks.Children()
	if len(seen) != len(children) {
		return fmt.Errorf("partition covers %d keys, key space has %d children", len(seen), len(children))
	}
	if t.Pool != len(children)-len(t.Secondaries) {
		return fmt.Errorf("pool size %d does not match %d children minus %d secondaries",
			t.Pool, len(children), len(t.Secondaries))
	}

	return nil
}
