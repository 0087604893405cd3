// Package download materializes export blobs as files.
package download

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxSuffix bounds the "name (N).ext" search.
const maxSuffix = 999

// Saver writes downloads into Dir without overwriting existing files.
type Saver struct {
	Dir string
}

// Save writes data as name inside the download directory. When name is taken
// the file becomes "name (1).ext", "name (2).ext" and so on. It returns the
// path written.
func (s Saver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("download: invalid file name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("download dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".guidegen-download-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	tmpPath := f.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	target, err := freeName(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("save %s: %w", filepath.Base(target), err)
	}
	return target, nil
}

func freeName(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i <= maxSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		_, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("download: no free name for %s in %s", name, dir)
}
