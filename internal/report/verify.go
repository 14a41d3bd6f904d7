package report

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoChecksum is returned when a report has no .sha256 sidecar.
var ErrNoChecksum = errors.New("checksum file not found")

// VerifyResult holds the outcome of checking one report against its sidecar.
type VerifyResult struct {
	Name         string
	Path         string
	Expected     string
	Actual       string
	Match        bool
	ErrorMessage string
}

// VerifyChecksum recomputes the SHA256 of the report at path and compares it
// with the digest recorded in path.sha256 by a FileSink.
func VerifyChecksum(path string) (*VerifyResult, error) {
	expected, name, err := readChecksum(path + ".sha256")
	if err != nil {
		return nil, err
	}

	actual, err := hashFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash report: %w", err)
	}

	result := &VerifyResult{
		Name:     name,
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Match:    expected == actual && name == filepath.Base(path),
	}

	if !result.Match {
		if name != filepath.Base(path) {
			result.ErrorMessage = fmt.Sprintf("checksum is for %s, not %s", name, filepath.Base(path))
		} else {
			result.ErrorMessage = fmt.Sprintf("hash mismatch: expected=%s, actual=%s", expected[:16], actual[:16])
		}
	}

	return result, nil
}

// readChecksum parses a single sha256sum line: "<hex>  <name>".
func readChecksum(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", ErrNoChecksum, path)
		}
		return "", "", fmt.Errorf("failed to open checksum file: %w", err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("failed to read checksum file: %w", err)
	}

	digest, name, ok := strings.Cut(strings.TrimRight(line, "\r\n"), "  ")
	if !ok || len(digest) != sha256.Size*2 || name == "" {
		return "", "", fmt.Errorf("malformed checksum file %s", path)
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", "", fmt.Errorf("malformed checksum file %s: %w", path, err)
	}

	return strings.ToLower(digest), name, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
