// Package tmux manages the shared tmux session that hosts one window
// per team agent.
package tmux

import (
	"fmt"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// Adapter wraps the gotmux client for team session lifecycle.
type Adapter struct {
	tmux *gotmux.Tmux
}

// NewAdapter creates a tmux client using the default socket.
func NewAdapter() (*Adapter, error) {
	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to create tmux client: %w", err)
	}
	return &Adapter{tmux: t}, nil
}

func (a *Adapter) getSession(name string) (*gotmux.Session, error) {
	sessions, err := a.tmux.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

// SessionExists reports whether a tmux session with the given name exists.
func (a *Adapter) SessionExists(name string) bool {
	s, err := a.getSession(name)
	return err == nil && s != nil
}

// StartSession creates the team session with one detached window per
// agent. Fails if a session with that name already exists.
func (a *Adapter) StartSession(name string, agents []string) error {
	if a.SessionExists(name) {
		return fmt.Errorf("session %s already exists, shut down the running team first", name)
	}

	session, err := a.tmux.NewSession(&gotmux.SessionOptions{Name: name})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	for _, agent := range agents {
		_, err := session.NewWindow(&gotmux.NewWindowOptions{
			WindowName:  agent,
			DoNotAttach: true,
		})
		if err != nil {
			return fmt.Errorf("failed to create window %s: %w", agent, err)
		}
	}
	return nil
}

// KillSession terminates the team session.
func (a *Adapter) KillSession(name string) error {
	session, err := a.getSession(name)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s not found", name)
	}
	return session.Kill()
}

// Windows returns the window names of a session, one per agent.
func (a *Adapter) Windows(name string) ([]string, error) {
	session, err := a.getSession(name)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", name)
	}
	windows, err := session.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	names := make([]string, 0, len(windows))
	for _, w := range windows {
		names = append(names, w.Name)
	}
	return names, nil
}

// AttachInstructions returns instructions for attaching to a session.
func (a *Adapter) AttachInstructions(name string) string {
	return fmt.Sprintf("Attach to session: tmux attach-session -t %s\n"+
		"Switch agent windows: Ctrl+b then window number\n"+
		"Detach: Ctrl+b then d\n", name)
}
