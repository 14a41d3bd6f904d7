// Package hierarchy assigns child keys to masters, either directly under the
// top master (one level) or under a set of secondary masters sampled from the
// key space (two levels).
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/dbsmedya/masterkey/internal/keyspace"
	"github.com/dbsmedya/masterkey/internal/pin"
)

// DefaultSecondaryMasters is the number of secondary masters selected when
// the caller does not choose one.
const DefaultSecondaryMasters = 100

// ErrNoSecondaryMasters is returned when a two-level partition is requested
// with a non-positive number of secondary masters.
var ErrNoSecondaryMasters = errors.New("number of secondary masters must be positive")

// PartitionOneLevel returns every key that the top master can operate
// alongside its own child key, in key space order. The master is excluded.
func PartitionOneLevel(ks *keyspace.KeySpace) []pin.Key {
	master := ks.Master()
	var children []pin.Key

	ks.Each(func(key pin.Key, asm pin.Assembly) bool {
		if key != master && pin.IsValidChild(master, key, asm) {
			children = append(children, key)
		}
		return true
	})

	return children
}

// SelectSecondaryMasters samples num keys from candidates at an even stride
// n = len(candidates) / (num+1), taking indices 0, n, 2n, ... in candidate
// order. When there are no more candidates than num, all of them are
// selected and clamped is true.
//
// The sample follows candidate order, which for a key space is lexicographic
// by pin depth; it is evenly spaced, not random.
func SelectSecondaryMasters(candidates []pin.Key, num int) (selected []pin.Key, clamped bool, err error) {
	if num <= 0 {
		return nil, false, fmt.Errorf("%w: got %d", ErrNoSecondaryMasters, num)
	}

	if len(candidates) <= num {
		selected = make([]pin.Key, len(candidates))
		copy(selected, candidates)
		return selected, true, nil
	}

	stride := len(candidates) / (num + 1)
	selected = make([]pin.Key, 0, num)
	for i := 0; i < len(candidates) && len(selected) < num; i += stride {
		selected = append(selected, candidates[i])
	}

	return selected, false, nil
}

// PartitionTwoLevel selects num secondary masters from the key space and
// hands every other child key to the first secondary master, in selection
// order, that can operate it. First match wins; later secondaries are never
// consulted for a key that already has one. Keys no secondary can operate
// are returned in Unassigned.
func PartitionTwoLevel(ks *keyspace.KeySpace, num int) (*TwoLevel, error) {
	candidates := ks.Children()

	selected, clamped, err := SelectSecondaryMasters(candidates, num)
	if err != nil {
		return nil, err
	}

	result := &TwoLevel{
		Master:      ks.Master(),
		Secondaries: make([]*Secondary, len(selected)),
		Pool:        len(candidates) - len(selected),
		Clamped:     clamped,
	}

	isSecondary := make(map[pin.Key]struct{}, len(selected))
	for i, key := range selected {
		result.Secondaries[i] = &Secondary{Key: key, Children: []pin.Key{}}
		isSecondary[key] = struct{}{}
	}

	for _, key := range candidates {
		if _, skip := isSecondary[key]; skip {
			continue
		}

		asm, _ := ks.Assembly(key)
		if owner := result.firstMatch(key, asm); owner != nil {
			owner.Children = append(owner.Children, key)
			continue
		}
		result.Unassigned = append(result.Unassigned, key)
	}

	return result, nil
}

func (t *TwoLevel) firstMatch(key pin.Key, asm pin.Assembly) *Secondary {
	for _, sec := range t.Secondaries {
		if pin.IsValidChild(sec.Key, key, asm) {
			return sec
		}
	}
	return nil
}
