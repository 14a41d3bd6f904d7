package report

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// RenderFunc writes one report to w.
type RenderFunc func(w io.Writer) error

// Sink is where rendered reports end up. Write returns the location of the
// committed report.
type Sink interface {
	Write(name string, render RenderFunc) (string, error)
}

// FileSink writes reports into Dir. Each report is rendered into a temporary
// file that is renamed into place only after every byte has been written and
// synced, so a failed run never leaves a partial report behind.
type FileSink struct {
	Dir      string
	Checksum bool // also write <name>.sha256 in sha256sum format
}

// NewFileSink creates a FileSink writing into dir.
func NewFileSink(dir string, checksum bool) *FileSink {
	return &FileSink{Dir: dir, Checksum: checksum}
}

// Write renders the report into Dir/name.
func (s *FileSink) Write(name string, render RenderFunc) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.Dir, name)

	var sum hash.Hash
	if s.Checksum {
		sum = sha256.New()
	}

	if err := writeAtomic(path, func(w io.Writer) error {
		if sum != nil {
			w = io.MultiWriter(w, sum)
		}
		return render(w)
	}); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", name, err)
	}

	if sum == nil {
		// A sidecar from an earlier checksummed run no longer matches.
		if err := os.Remove(path + ".sha256"); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to remove stale checksum for %s: %w", name, err)
		}
		return path, nil
	}

	line := hex.EncodeToString(sum.Sum(nil)) + "  " + name + "\n"
	if err := writeAtomic(path+".sha256", func(w io.Writer) error {
		_, err := io.WriteString(w, line)
		return err
	}); err != nil {
		return "", fmt.Errorf("failed to write checksum for %s: %w", name, err)
	}

	return path, nil
}

// writeAtomic renders into a temp file next to path and renames it over
// path. The temp file is removed on every failure path.
func writeAtomic(path string, render RenderFunc) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err := render(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to finalize: %w", err)
	}

	committed = true
	return nil
}

// MemorySink keeps reports in memory. A failed render stores nothing.
type MemorySink struct {
	reports map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{reports: make(map[string][]byte)}
}

// Write renders the report into memory and returns "memory://<name>".
func (s *MemorySink) Write(name string, render RenderFunc) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", name, err)
	}
	s.reports[name] = buf.Bytes()
	return "memory://" + name, nil
}

// Get returns a captured report.
func (s *MemorySink) Get(name string) (string, bool) {
	b, ok := s.reports[name]
	return string(b), ok
}

// Names returns the captured report names, sorted.
func (s *MemorySink) Names() []string {
	names := make([]string, 0, len(s.reports))
	for name := range s.reports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
