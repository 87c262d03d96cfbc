package runner

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/turlang/tur/pkg/domain"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines
// communication: one command object per input line, one event object per
// output line.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

type jsonEvent struct {
	Type     string           `json:"type"`
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
	Blank    string           `json:"blank,omitempty"`
	Message  string           `json:"message,omitempty"`
}

func (h *JSONHandler) Output(snap domain.Snapshot, blank rune) error {
	return h.Encoder.Encode(jsonEvent{
		Type:     "snapshot",
		Snapshot: &snap,
		Blank:    string(blank),
	})
}

func (h *JSONHandler) Notify(message string) error {
	return h.Encoder.Encode(jsonEvent{Type: "message", Message: message})
}

func (h *JSONHandler) Input() (Command, error) {
	for {
		text, err := h.Reader.ReadString('\n')
		if err != nil {
			return Command{}, err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		var cmd Command
		if err := json.Unmarshal([]byte(text), &cmd); err != nil {
			if nerr := h.Notify("malformed command: " + err.Error()); nerr != nil {
				return Command{}, nerr
			}
			continue
		}
		return cmd, nil
	}
}
