package ui

import (
	"context"

	"propview/internal/viewctl"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the root model. It forwards input to the PropertyView,
// applies lookup key edits and manual fetches to the controller, and
// re-renders whenever a controller event arrives.
type AppModel struct {
	Controller *viewctl.Controller
	Events     <-chan viewctl.Event
	Page       *PropertyView
	Keys       *KeybindRegistry

	ctx context.Context
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model. events must be the channel the
// controller notifies (see viewctl.ChanNotifier); ctx bounds all fetches.
func NewAppModel(ctx context.Context, ctl *viewctl.Controller, events <-chan viewctl.Event) *AppModel {
	reg := NewKeybindRegistry()
	reg.Describe("tab", "Focus")
	reg.Describe("enter", "Get details")
	reg.BindWithDesc("ctrl+g", func() tea.Msg { return RequestDetailMsg{} }, "Get details")
	reg.Describe("pgup", "Scroll up")
	reg.Describe("pgdown", "Scroll down")
	reg.BindWithDesc("esc", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "")
	return &AppModel{
		Controller: ctl,
		Events:     events,
		Page:       NewPropertyView(),
		Keys:       reg,
		ctx:        ctx,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(
		initializeCmd(a.ctx, a.Controller),
		listenForEvents(a.Events),
		a.Page.Init(),
	)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case viewctl.Event:
		cmds = append(cmds, listenForEvents(a.Events))
		return a, tea.Batch(append(cmds, a.refresh())...)
	case RequestDetailMsg:
		a.Controller.RequestDetailManually(a.ctx)
		return a, a.refresh()
	case tea.KeyMsg:
		if cmd := a.Keys.Lookup(msg.String()); cmd != nil {
			return a, cmd
		}
	}

	v, cmd := a.Page.Update(msg)
	if p, ok := v.(*PropertyView); ok {
		a.Page = p
	}
	cmds = append(cmds, cmd)

	// Every edit of the input is a potential key change; the controller
	// ignores values equal to the current key.
	if key := a.Page.LookupValue(); key != a.Controller.LookupKey() {
		a.Controller.SetLookupKey(a.ctx, key)
	}
	cmds = append(cmds, a.refresh())
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	a.Page.SetSnapshot(a.Controller.Snapshot())
	base := a.Page.View()
	if help := RenderKeybindHelp(a.Keys); help != "" {
		base += "\n\n" + help
	}
	return base
}

// refresh pulls the latest snapshot into the page and keeps the spinner in
// step with in-flight fetches.
func (a *appModelAdapter) refresh() tea.Cmd {
	s := a.Controller.Snapshot()
	a.Page.SetSnapshot(s)
	return a.Page.SetLoading(s.InFlight > 0)
}
