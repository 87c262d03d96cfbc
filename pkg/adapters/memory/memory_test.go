package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turlang/tur/pkg/adapters/memory"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}

func TestCatalog(t *testing.T) {
	p := &domain.Program{
		Name:         "demo",
		InitialState: "start",
		Tapes:        []string{"a"},
		Heads:        []int{0},
		Blank:        ' ',
	}
	catalog := memory.NewCatalog(p)

	assert.Equal(t, []string{"demo"}, catalog.List())

	got, err := catalog.Get("demo")
	require.NoError(t, err)
	got.Tapes[0] = "changed"

	again, err := catalog.Get("demo")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Tapes[0], "Get should hand out copies")

	_, err = catalog.Get("missing")
	assert.Error(t, err)
}
