package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqgenie/internal/router"
	"github.com/abhisek/mcqgenie/internal/screen"
	"github.com/abhisek/mcqgenie/internal/screens/home"
	"github.com/abhisek/mcqgenie/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates a new AppModel with the home screen.
func NewAppModel(svc home.Service, defaultCount int) AppModel {
	return AppModel{
		router: router.New(home.New(svc, defaultCount)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// Screens own esc so they can confirm before leaving.
	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the active screen inside the header and footer.
func (m AppModel) render() string {
	active := m.router.Active()
	chrome := layout.Chrome{Title: active.Title(), Hints: m.footerHints(active)}
	if sp, ok := active.(screen.StatusProvider); ok {
		chrome.Status = sp.Status()
	}
	return chrome.Frame(m.width, m.height, m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(svc home.Service, defaultCount int) error {
	p := tea.NewProgram(NewAppModel(svc, defaultCount))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
