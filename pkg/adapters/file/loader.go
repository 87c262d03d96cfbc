// Package file loads program source from the filesystem. It implements
// ports.SourceLoader over a directory of .tur files and offers one-shot
// helpers for single files and readers.
package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/turlang/tur/pkg/domain"
)

// Ext is the conventional program source extension.
const Ext = ".tur"

// LoadFile reads one source file, enforcing the program size cap.
func LoadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read program %s: %w", path, err)
	}
	if info.Size() > domain.MaxProgramSize {
		return "", fmt.Errorf("program %s exceeds maximum size of %d bytes", path, domain.MaxProgramSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read program %s: %w", path, err)
	}
	return string(data), nil
}

// LoadReader reads source from an arbitrary reader (typically stdin),
// enforcing the same size cap as LoadFile.
func LoadReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, domain.MaxProgramSize+1))
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	if len(data) > domain.MaxProgramSize {
		return "", fmt.Errorf("program exceeds maximum size of %d bytes", domain.MaxProgramSize)
	}
	return string(data), nil
}

// Loader implements ports.SourceLoader over a directory of .tur files.
// Names are file names without the extension.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadSource returns the source text for a program name.
func (l *Loader) LoadSource(name string) (string, error) {
	return LoadFile(filepath.Join(l.dir, name+Ext))
}

// ListSources returns the program names available in the directory, sorted.
func (l *Loader) ListSources() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("list programs in %s: %w", l.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}
