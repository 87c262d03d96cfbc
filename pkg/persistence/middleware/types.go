// Package middleware wraps SessionStore implementations with cross-cutting
// behavior such as encryption at rest. Middlewares compose: each one takes
// the next store in the chain and returns a store with the same contract.
package middleware

import "github.com/turlang/tur/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore
