package middleware

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turlang/tur/pkg/adapters/memory"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/ports"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func testSession(id string) *domain.Session {
	p := &domain.Program{
		Name:         "walker",
		InitialState: "walk",
		Tapes:        []string{"secret tape"},
		Heads:        []int{0},
		Blank:        ' ',
		Rules: map[string][]domain.Transition{
			"walk": {{
				Read:       []rune{'s'},
				Write:      []rune{'s'},
				Directions: []domain.Direction{domain.Right},
				NextState:  domain.HaltState,
			}},
		},
	}
	return domain.NewSession(id, p)
}

func TestEncryptionMiddlewareContract(t *testing.T) {
	mw := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})
	ports.RunSessionStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddlewareSealsAtRest(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)

	require.NoError(t, store.Save(ctx, testSession("s1")))

	// The inner store must only see the opaque envelope.
	raw, err := inner.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, raw.Program)
	assert.Empty(t, raw.Snapshot.Tapes)
	assert.NotEmpty(t, raw.Sealed)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded.Program)
	assert.Equal(t, "walker", loaded.Program.Name)
	assert.Equal(t, []string{"secret tape"}, loaded.Snapshot.Tapes)
}

func TestEncryptionMiddlewareKeyRotation(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()

	oldStore := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)
	require.NoError(t, oldStore.Save(ctx, testSession("rotated")))

	// A new active key with the old one as fallback still reads old data.
	newStore := NewEncryptionMiddleware(EncryptionConfig{
		ActiveKey:    testKey(2),
		FallbackKeys: [][]byte{testKey(1)},
	})(inner)

	loaded, err := newStore.Load(ctx, "rotated")
	require.NoError(t, err)
	assert.Equal(t, "walker", loaded.Program.Name)
}

func TestEncryptionMiddlewareWrongKey(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()

	writer := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)
	require.NoError(t, writer.Save(ctx, testSession("locked")))

	reader := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(9)})(inner)
	_, err := reader.Load(ctx, "locked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}

func TestEncryptionMiddlewareRejectsPlainSessions(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	require.NoError(t, inner.Save(ctx, testSession("plain")))

	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)
	_, err := store.Load(ctx, "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope")
}

func TestEncryptionMiddlewareRequires32ByteKey(t *testing.T) {
	assert.Panics(t, func() {
		NewEncryptionMiddleware(EncryptionConfig{ActiveKey: []byte("short")})
	})
}
