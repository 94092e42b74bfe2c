// Package panel is a terminal control panel for the ocean parameters.
//
// The panel runs its own goroutine. Edits travel to the render thread over a
// buffered channel and are applied to the store by Binding.Apply between frames,
// so the store is only ever touched by the thread that renders. Store changes
// travel back to the panel through a second channel.
package panel

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/massymassy/gosea/params"
	"go.uber.org/zap"
)

const changeBuffer = 64

// Binding connects a Store to the terminal panel.
type Binding struct {
	store   *params.Store
	changes chan Change
	updates chan Change
	// seq of the edit being applied, so its echo can be matched by the panel
	applying uint64
}

// NewBinding observes every editable parameter of store. Call it on the thread
// that owns the store.
func NewBinding(store *params.Store) (*Binding, error) {
	b := &Binding{
		store:   store,
		changes: make(chan Change, changeBuffer),
		updates: make(chan Change, changeBuffer),
	}
	for _, def := range store.Definitions() {
		if !editable(def) {
			continue
		}
		name := def.Name
		if err := store.OnChange(name, func(v params.Value) { b.publish(Change{Name: name, Value: v, Seq: b.applying}) }); err != nil {
			return nil, fmt.Errorf("failed to observe %s: %w", name, err)
		}
	}
	return b, nil
}

func (b *Binding) publish(c Change) {
	select {
	case b.updates <- c:
	default:
		zap.S().Debugf("Panel busy, dropped display update for %s", c.Name)
	}
}

func (b *Binding) submit(c Change) {
	select {
	case b.changes <- c:
	default:
		zap.S().Warnf("Too many pending edits, dropped %s=%s", c.Name, c.Value)
	}
}

// Apply sets every queued edit on the store and returns how many were accepted.
// It never blocks.
func (b *Binding) Apply() int {
	applied := 0
	for {
		select {
		case c := <-b.changes:
			if err := b.apply(c); err != nil {
				zap.S().Warnf("Rejected panel edit: %v", err)
				continue
			}
			applied++
		default:
			return applied
		}
	}
}

func (b *Binding) apply(c Change) error {
	b.applying = c.Seq
	defer func() { b.applying = 0 }()
	if c.Reset {
		return b.store.Reset(c.Name)
	}
	_, err := b.store.Set(c.Name, c.Value)
	return err
}

// Start shows the panel. The initial values are read from the store before it
// returns; after that the panel goroutine never touches the store. The returned
// channel yields once when the panel closes, either because the user quit it or
// because ctx was cancelled.
func (b *Binding) Start(ctx context.Context, opts ...tea.ProgramOption) <-chan error {
	m := newModel(b.store.Definitions(), b.store.Snapshot(), b.submit)

	ctx, cancel := context.WithCancel(ctx)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	go b.forward(ctx, p)

	done := make(chan error, 1)
	go func() {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			err = nil
		}
		done <- err
	}()
	return done
}

func (b *Binding) forward(ctx context.Context, p *tea.Program) {
	for {
		select {
		case c := <-b.updates:
			p.Send(valueMsg(c))
		case <-ctx.Done():
			return
		}
	}
}
