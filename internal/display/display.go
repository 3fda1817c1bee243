// Package display shows the viewer's scene on a local screen.
package display

import (
	"context"

	"github.com/rook-computer/keyviz/internal/state"
)

// Display mirrors the scene held by a state.Store.
type Display interface {
	Start(ctx context.Context) error
	Stop() error
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.Snapshot)
}

type NoopDisplay struct{}

func (n *NoopDisplay) Start(ctx context.Context) error                 { return nil }
func (n *NoopDisplay) Stop() error                                     { return nil }
func (n *NoopDisplay) RunLoop(ctx context.Context, store *state.Store) {}
func (n *NoopDisplay) RedrawWithState(snap state.Snapshot)             {}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}
