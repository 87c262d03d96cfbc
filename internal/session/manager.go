// Package session coordinates persisted machine executions. A Manager
// rebuilds a Machine from a stored session, applies an operation, and writes
// the resulting snapshot back, so any SessionStore backend gives stop and
// resume semantics.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/machine"
	"github.com/turlang/tur/pkg/ports"
)

// Manager drives sessions against a SessionStore.
type Manager struct {
	store  ports.SessionStore
	logger *slog.Logger
}

// NewManager creates a manager. A nil logger is replaced with a no-op one by
// the caller; the manager assumes logger is usable.
func NewManager(store ports.SessionStore, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Create starts a new session for the program. An empty id gets a random one.
func (m *Manager) Create(ctx context.Context, id string, p *domain.Program) (*domain.Session, error) {
	if id == "" {
		id = newID()
	}
	session := domain.NewSession(id, p)
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	m.logger.Info("session created", "session", id, "program", p.Name)
	return session, nil
}

// Get returns a stored session.
func (m *Manager) Get(ctx context.Context, id string) (*domain.Session, error) {
	return m.store.Load(ctx, id)
}

// List returns all stored session IDs.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Info("session deleted", "session", id)
	return nil
}

// Step advances a session by up to n steps and persists the result. It
// returns the updated session and the outcome of the last step taken. A
// strict-mode halt error is returned alongside the persisted session; it is
// an end-of-run condition, not a storage failure.
func (m *Manager) Step(ctx context.Context, id string, n int) (*domain.Session, machine.Outcome, error) {
	if n < 1 {
		return nil, machine.Halted, domain.Validationf("step count must be positive, got %d", n)
	}
	return m.advance(ctx, id, func(mach *machine.Machine) (machine.Outcome, error) {
		outcome, err := mach.Step()
		for i := 1; i < n && outcome == machine.Continue; i++ {
			outcome, err = mach.Step()
		}
		return outcome, err
	})
}

// Run advances a session until it halts or the step budget runs out.
func (m *Manager) Run(ctx context.Context, id string) (*domain.Session, machine.Outcome, error) {
	return m.advance(ctx, id, func(mach *machine.Machine) (machine.Outcome, error) {
		return mach.Run()
	})
}

// Reset returns a session to its program's initial configuration.
func (m *Manager) Reset(ctx context.Context, id string) (*domain.Session, error) {
	session, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	mach := machine.New(session.Program)
	session.Snapshot = mach.Snapshot()
	session.Touch()
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetTapes overwrites the session's tape contents and persists the result.
// Only sensible before stepping; the machine itself validates the inputs.
func (m *Manager) SetTapes(ctx context.Context, id string, tapes []string) (*domain.Session, error) {
	session, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	mach, err := restore(session)
	if err != nil {
		return nil, err
	}
	if err := mach.SetTapesContent(tapes); err != nil {
		return nil, err
	}

	session.Snapshot = mach.Snapshot()
	session.Touch()
	if err := m.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// advance loads, mutates via fn, and persists. The machine error (strict
// halt) is carried through after a successful save.
func (m *Manager) advance(ctx context.Context, id string, fn func(*machine.Machine) (machine.Outcome, error)) (*domain.Session, machine.Outcome, error) {
	session, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, machine.Halted, err
	}

	mach, err := restore(session)
	if err != nil {
		return nil, machine.Halted, err
	}

	outcome, stepErr := fn(mach)

	session.Snapshot = mach.Snapshot()
	session.Touch()
	if err := m.store.Save(ctx, session); err != nil {
		return nil, machine.Halted, err
	}

	m.logger.Debug("session advanced",
		"session", id, "state", session.Snapshot.State,
		"steps", session.Snapshot.Steps, "outcome", outcome.String())
	return session, outcome, stepErr
}

func restore(session *domain.Session) (*machine.Machine, error) {
	mach := machine.New(session.Program)
	if err := mach.Restore(session.Snapshot); err != nil {
		return nil, fmt.Errorf("session %s has a corrupt snapshot: %w", session.ID, err)
	}
	return mach, nil
}

func newID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
