// Package ui is the Bubble Tea front-end for the property view.
//
// Core abstractions:
//   - View: a screen region with its own model, update, view (Elm-style)
//   - AppModel: root model; owns the controller bridge and app-level keys
//   - PropertyView: heading, summary, list, lookup form and detail
//   - FocusManager: rotates focus between the form controls and the page
//   - KeybindRegistry: app-level bindings and the help footer
//
// Controller events (viewctl.Event) arrive as messages and cause a re-render
// from a fresh controller snapshot.
package ui
