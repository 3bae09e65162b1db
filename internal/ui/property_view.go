package ui

import (
	"strings"

	"propview/internal/render"
	"propview/internal/ui/textutil"
	"propview/internal/viewctl"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeHeight is the title line plus the help footer and its gap.
	chromeHeight = 3
)

// PropertyView renders the controller snapshot as a scrollable page with
// the lookup form embedded between the list and the detail.
type PropertyView struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	Focus    *FocusManager

	snapshot viewctl.Snapshot
	loading  bool // true while any fetch is in flight
	width    int
}

// Ensure PropertyView implements View.
var _ View = (*PropertyView)(nil)

// NewPropertyView creates the view with the lookup input focused.
func NewPropertyView() *PropertyView {
	ti := textinput.New()
	ti.Placeholder = render.KeyPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = 24
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	p := &PropertyView{
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		spinner:  s,
		width:    defaultWidth,
	}
	p.Focus = NewFocusManager(FocusInput, FocusButton, FocusPage)
	p.Focus.OnChange = func(from, to string) {
		if to == FocusInput {
			p.input.Focus()
		} else {
			p.input.Blur()
		}
	}
	return p
}

// Init implements View.
func (p *PropertyView) Init() tea.Cmd {
	return textinput.Blink
}

// LookupValue returns the text currently in the lookup input.
func (p *PropertyView) LookupValue() string {
	return p.input.Value()
}

// SetSnapshot replaces the state the view renders.
func (p *PropertyView) SetSnapshot(s viewctl.Snapshot) {
	p.snapshot = s
}

// SetLoading sets the loading state and returns a command to start the
// spinner when loading begins.
func (p *PropertyView) SetLoading(loading bool) tea.Cmd {
	was := p.loading
	p.loading = loading
	if loading && !was {
		return p.spinner.Tick
	}
	return nil
}

// SetSize resizes the page to the terminal.
func (p *PropertyView) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = max(height-chromeHeight, 1)
}

// Update implements View.
func (p *PropertyView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil
	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}

	// Cursor blink and other input-internal messages.
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *PropertyView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		p.Focus.Next()
		return nil
	case "shift+tab":
		p.Focus.Prev()
		return nil
	case "enter":
		if p.Focus.Is(FocusInput) || p.Focus.Is(FocusButton) {
			return func() tea.Msg { return RequestDetailMsg{} }
		}
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	switch {
	case p.Focus.Is(FocusInput):
		p.input, cmd = p.input.Update(msg)
	case p.Focus.Is(FocusPage):
		p.viewport, cmd = p.viewport.Update(msg)
	}
	return cmd
}

// View implements View.
func (p *PropertyView) View() string {
	title := Styles.Title.Render(render.Heading)
	if p.loading {
		title += " " + p.spinner.View()
	}
	p.viewport.SetContent(p.content())
	return title + "\n" + p.viewport.View()
}

// content builds the scrollable page body.
func (p *PropertyView) content() string {
	var b strings.Builder
	s := p.snapshot

	b.WriteString(Styles.Section.Render(render.SummaryHeading) + "\n")
	if s.Summary == nil {
		b.WriteString(Styles.Empty.Render(render.SummaryLoading) + "\n")
	} else {
		b.WriteString(Styles.JSON.Render(render.Document(s.Summary)) + "\n")
	}

	b.WriteString(Styles.Section.Render(render.ListHeading) + "\n")
	if items := render.ListItems(s.Properties); items != nil {
		for _, line := range items {
			b.WriteString(Styles.Item.Render(textutil.Truncate(line, p.width)) + "\n")
		}
	} else {
		b.WriteString(Styles.Empty.Render(render.ListLoading) + "\n")
	}

	b.WriteString(Styles.Section.Render(render.DetailHeading) + "\n")
	inputStyle, buttonStyle := Styles.Input, Styles.Button
	if p.Focus.Is(FocusInput) {
		inputStyle = Styles.InputFocused
	}
	if p.Focus.Is(FocusButton) {
		buttonStyle = Styles.ButtonFocused
	}
	form := lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(p.input.View()),
		"  ",
		buttonStyle.Render(render.DetailButton),
	)
	b.WriteString(form + "\n")
	if s.Detail == nil {
		b.WriteString(Styles.Empty.Render(render.DetailNotFound))
	} else {
		b.WriteString(Styles.JSON.Render(render.Document(s.Detail)))
	}
	return b.String()
}
