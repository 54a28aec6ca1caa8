package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/iossim/internal/output"
	"github.com/vburojevic/iossim/internal/resolve"
)

var errPickCanceled = errors.New("selection canceled")

// PickCmd interactively picks a --devicetypeid value
type PickCmd struct{}

// pickItem implements list.Item for the picker
type pickItem struct {
	choice resolve.Choice
}

func (i pickItem) Title() string       { return i.choice.Name }
func (i pickItem) Description() string { return i.choice.Runtime + " • " + i.choice.Identifier }
func (i pickItem) FilterValue() string { return i.choice.Name + " " + i.choice.Runtime }

// pickModel is the bubbletea model for the picker
type pickModel struct {
	list     list.Model
	selected *pickItem
	quitting bool
	canceled bool
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// keys belong to the filter input while typing
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickItem); ok {
				m.selected = &item
				m.quitting = true
				return m, tea.Quit
			}
		case "q", "esc", "ctrl+c":
			m.canceled = true
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

func newPickModel(choices []resolve.Choice) pickModel {
	items := make([]list.Item, 0, len(choices))
	for _, c := range choices {
		items = append(items, pickItem{choice: c})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Foreground(lipgloss.Color("39")).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("241"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select device type"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = output.Styles.Title.
		Background(lipgloss.Color("39")).
		Foreground(lipgloss.Color("0"))

	return pickModel{list: l}
}

// Run executes the pick command
func (c *PickCmd) Run(globals *Globals) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return outputErrorCommon(globals, CodeNotInteractive,
			"iossim pick requires an interactive terminal",
			"Use `iossim showdevicetypes` for scripting")
	}

	ctx, cancel := context.WithTimeout(globals.context(), listTimeout)
	defer cancel()

	if err := globals.requireSimctl(ctx); err != nil {
		return err
	}
	cat, err := globals.Sim.Catalog(ctx)
	if err != nil {
		return emitFailure(globals, &resolve.CatalogError{Err: err})
	}
	opts, err := globals.resolveOptions()
	if err != nil {
		return outputErrorCommon(globals, CodeInvalidConfig, err.Error())
	}

	choices := resolve.Choices(cat, opts.OSName)
	if len(choices) == 0 {
		return outputErrorCommon(globals, CodeDeviceNotFound, "no simulator devices with an available runtime",
			"Create simulators in Xcode > Window > Devices and Simulators")
	}

	p := tea.NewProgram(newPickModel(choices), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	result := finalModel.(pickModel)
	if result.canceled || result.selected == nil {
		return errPickCanceled
	}
	return c.outputResult(globals, result.selected.choice)
}

func (c *PickCmd) outputResult(globals *Globals, choice resolve.Choice) error {
	if globals.ndjson() {
		return newEmitter(globals).DeviceType(choice.Identifier, choice.Name, choice.Runtime)
	}
	// Text format: just the identifier, ready for --devicetypeid
	_, err := io.WriteString(globals.Stdout, choice.Identifier+"\n")
	return err
}
