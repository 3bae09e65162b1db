package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeybindRegistry maps app-level keys to commands.
// Keys use tea.KeyMsg.String() notation: "ctrl+c", "esc", "tab".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	order        []string // registration order, for stable help output
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
	}
}

// BindWithDesc registers a key with a command and a help description.
// Overwrites any existing binding for the key.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	n := normalizeSeq(seq)
	if _, ok := r.bindings[n]; !ok {
		if _, described := r.descriptions[n]; !described {
			r.order = append(r.order, n)
		}
	}
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
}

// Describe adds a help entry for a key handled by a view rather than by the
// registry. Lookup never returns a command for it.
func (r *KeybindRegistry) Describe(seq, desc string) {
	n := normalizeSeq(seq)
	if _, ok := r.descriptions[n]; !ok {
		if _, bound := r.bindings[n]; !bound {
			r.order = append(r.order, n)
		}
	}
	r.descriptions[n] = desc
}

// Lookup returns the command for a key, or nil if not bound.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)]
}

// Bindings returns help bindings for every described key, in registration order.
func (r *KeybindRegistry) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.order))
	for _, seq := range r.order {
		desc, ok := r.descriptions[seq]
		if !ok {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(seq),
			key.WithHelp(seq, desc),
		))
	}
	return out
}

// normalizeSeq trims and lowercases modifier prefixes; "Ctrl+C" -> "ctrl+c".
func normalizeSeq(seq string) string {
	s := strings.TrimSpace(seq)
	if i := strings.LastIndex(s, "+"); i > 0 {
		return strings.ToLower(s[:i]) + s[i:]
	}
	return s
}

// RenderKeybindHelp renders the one-line help footer.
func RenderKeybindHelp(r *KeybindRegistry) string {
	if r == nil {
		return ""
	}
	bindings := r.Bindings()
	if len(bindings) == 0 {
		return ""
	}
	helpModel := help.New()
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = Styles.Hint
	helpModel.Styles.ShortSeparator = Styles.Hint
	return helpModel.ShortHelpView(bindings)
}
