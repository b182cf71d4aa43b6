// internal/archive/memory/export.go
package memory

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magcot/magcot/internal/archive/snapshot"

	"github.com/h2non/filetype"
)

func (b *Backend) fileName(s *snapshot.Snapshot) string {
	timestamp := s.CreatedAt.Format(snapshot.TimeFormat)
	if b.cfg.CompressOutput {
		return fmt.Sprintf("%s_%s.json.gz", s.Name, timestamp)
	}
	return fmt.Sprintf("%s_%s.json", s.Name, timestamp)
}

// export writes s into the output directory and returns the file path.
func (b *Backend) export(s *snapshot.Snapshot) (string, error) {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, b.fileName(s))
	if b.cfg.CompressOutput {
		return outputPath, writeGzipJSON(outputPath, s)
	}
	return outputPath, writeJSON(outputPath, s)
}

func writeJSON(path string, s *snapshot.Snapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer closeFile(f, &err)

	return json.NewEncoder(f).Encode(s)
}

func writeGzipJSON(path string, s *snapshot.Snapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer closeFile(f, &err)

	return encodeGzip(f, s)
}

// encodeGzip compresses s into w. The gzip trailer is only written on Close,
// so its error is the write error.
func encodeGzip(w io.Writer, s *snapshot.Snapshot) error {
	gzWriter := gzip.NewWriter(w)
	if err := json.NewEncoder(gzWriter).Encode(s); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}
	return nil
}

// closeFile closes f, keeping the first error.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close file: %w", cerr)
	}
}

// isSnapshotFile reports whether name has the <name>_<time>.json[.gz] shape
// written by export. Other files in the output directory are left alone.
func isSnapshotFile(name string) bool {
	base, ok := strings.CutSuffix(name, ".json.gz")
	if !ok {
		if base, ok = strings.CutSuffix(name, ".json"); !ok {
			return false
		}
	}
	cut := len(base) - len(snapshot.TimeFormat)
	if cut < 2 || base[cut-1] != '_' {
		return false
	}
	if _, err := time.Parse(snapshot.TimeFormat, base[cut:]); err != nil {
		return false
	}
	return snapshot.ValidateName(base[:cut-1]) == nil
}

// readDir decodes every snapshot file in the output directory. A missing
// directory holds no snapshots.
func (b *Backend) readDir() ([]*snapshot.Snapshot, error) {
	entries, err := os.ReadDir(b.cfg.OutputDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var found []*snapshot.Snapshot
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isSnapshotFile(name) {
			continue
		}
		s, err := readFile(filepath.Join(b.cfg.OutputDir, name))
		if err != nil {
			return nil, err
		}
		found = append(found, s)
	}
	return found, nil
}

// readFile decodes a snapshot file, sniffing gzip by content.
func readFile(path string) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var r io.Reader = bytes.NewReader(data)
	if filetype.Is(data, "gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var s snapshot.Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := snapshot.ValidateName(s.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}
