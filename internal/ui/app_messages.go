package ui

// RequestDetailMsg is sent when the user presses the "Get Property Details"
// control (enter on the form, or ctrl+g anywhere).
type RequestDetailMsg struct{}
