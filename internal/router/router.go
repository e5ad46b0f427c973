// Package router keeps the stack of screens the terminal client navigates.
// Screens ask for navigation by returning one of the *Msg commands below;
// everything else goes to the screen on top.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgenie/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }
	// PopScreenMsg closes the current screen.
	PopScreenMsg struct{}
	// ReplaceScreenMsg swaps the current screen for Screen.
	ReplaceScreenMsg struct{ Screen screen.Screen }
	// PopToRootMsg closes every screen but the first.
	PopToRootMsg struct{}
)

// Router is a stack of screens. The root screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if n := len(r.stack); n > 1 {
		r.stack[n-1] = nil
		r.stack = r.stack[:n-1]
	}
	return nil
}

// Replace swaps the top screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot closes everything above the root and re-runs the root's Init
// so it can refresh.
func (r *Router) PopToRoot() tea.Cmd {
	clear(r.stack[1:])
	r.stack = r.stack[:1]
	return r.stack[0].Init()
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards the rest to the active
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
