package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandlerLoop(t *testing.T) {
	m := newWalker(t)

	script := `{"command":"step","count":2}
{"command":"quit"}
`
	var out bytes.Buffer
	r := NewRunner()
	r.Handler = NewJSONHandler(strings.NewReader(script), &out)
	require.NoError(t, r.Run(m))

	assert.Equal(t, 2, m.StepCount())

	// Every output line must be a self-contained JSON event.
	scanner := bufio.NewScanner(&out)
	var events []jsonEvent
	for scanner.Scan() {
		var ev jsonEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, "snapshot", last.Type)
	require.NotNil(t, last.Snapshot)
	assert.Equal(t, 2, last.Snapshot.Steps)
	assert.Equal(t, ".", last.Blank)
}

func TestJSONHandlerMalformedLine(t *testing.T) {
	script := `not json
{"command":"quit"}
`
	var out bytes.Buffer
	h := NewJSONHandler(strings.NewReader(script), &out)

	cmd, err := h.Input()
	require.NoError(t, err)
	assert.Equal(t, "quit", cmd.Name)
	assert.Contains(t, out.String(), "malformed command")
}
