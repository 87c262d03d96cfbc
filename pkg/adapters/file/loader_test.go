package file_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turlang/tur/pkg/adapters/file"
	"github.com/turlang/tur/pkg/domain"
)

const sample = `name: T
tape: a
rules:
  start:
    a -> b, R, halt
`

func TestLoaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.tur"), []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	loader := file.NewLoader(dir)

	names, err := loader.ListSources()
	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, names)

	source, err := loader.LoadSource("demo")
	require.NoError(t, err)
	assert.Equal(t, sample, source)

	_, err = loader.LoadSource("missing")
	assert.Error(t, err)
}

func TestLoadFileSizeCap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.tur")
	require.NoError(t, os.WriteFile(path, make([]byte, domain.MaxProgramSize+1), 0o644))

	_, err := file.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum size")
}

func TestLoadReader(t *testing.T) {
	source, err := file.LoadReader(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, sample, source)

	_, err = file.LoadReader(strings.NewReader(strings.Repeat("x", domain.MaxProgramSize+1)))
	require.Error(t, err)
}
