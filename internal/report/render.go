// Package report renders master key hierarchies as plain text reports.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dbsmedya/masterkey/internal/hierarchy"
	"github.com/dbsmedya/masterkey/internal/keyspace"
	"github.com/dbsmedya/masterkey/internal/pin"
)

var (
	masterSeparator = "\n" + strings.Repeat("=", 72) + "\n\n"
	childSeparator  = strings.Repeat("-", 72) + "\n"
)

// stickyWriter remembers the first write error so renderers can write
// unconditionally and check once at the end.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) print(parts ...string) {
	for _, p := range parts {
		if s.err != nil {
			return
		}
		_, s.err = io.WriteString(s.w, p)
	}
}

// childLine renders "{1 2 3}  |  (1 + 0)(2 + 0)(3 + 0)".
func childLine(key pin.Key, ks *keyspace.KeySpace) string {
	asm, _ := ks.Assembly(key)
	return key.Compact() + "  |  " + asm.String() + "\n"
}

func totalLine(key pin.Key, total int) string {
	return fmt.Sprintf("%s - Total Child Key: %d\n", key, total)
}

// WriteOneLevel renders the master, its child count and one line per child.
func WriteOneLevel(w io.Writer, ks *keyspace.KeySpace, children []pin.Key) error {
	sw := &stickyWriter{w: w}

	sw.print(totalLine(ks.Master(), len(children)), masterSeparator)
	for _, child := range children {
		sw.print(childLine(child, ks))
	}

	return sw.err
}

// WriteTwoLevel renders the master followed by one block per secondary
// master. When includeUnassigned is set and some children have no secondary
// master, they are listed in a final block of the same shape.
func WriteTwoLevel(w io.Writer, ks *keyspace.KeySpace, result *hierarchy.TwoLevel, includeUnassigned bool) error {
	sw := &stickyWriter{w: w}

	sw.print(result.Master.String())

	for _, sec := range result.Secondaries {
		sw.print(masterSeparator, totalLine(sec.Key, len(sec.Children)), childSeparator)
		for _, child := range sec.Children {
			sw.print(childLine(child, ks))
		}
	}

	if includeUnassigned && len(result.Unassigned) > 0 {
		sw.print(masterSeparator,
			fmt.Sprintf("Unassigned - Total Child Key: %d\n", len(result.Unassigned)),
			childSeparator)
		for _, key := range result.Unassigned {
			sw.print(childLine(key, ks))
		}
	}

	return sw.err
}

// WriteKeySpace lists every enumerated key, master included, with its
// assembly.
func WriteKeySpace(w io.Writer, ks *keyspace.KeySpace) error {
	sw := &stickyWriter{w: w}

	ks.Each(func(key pin.Key, asm pin.Assembly) bool {
		sw.print(key.String(), "  |  ", asm.String(), "\n")
		return sw.err == nil
	})

	return sw.err
}
