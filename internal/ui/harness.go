package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for tests. Commands returned
// by Update are recorded rather than run, since most of them are timers.
type Harness struct {
	model *Model
	last  tea.Cmd
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	if h.model == nil {
		return nil
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.last = cmd
	return cmd
}

// SendAll sends msgs in order.
func (h *Harness) SendAll(msgs ...tea.Msg) {
	for _, msg := range msgs {
		h.Send(msg)
	}
}

// Quit reports whether the last update asked the program to exit.
func (h *Harness) Quit() bool {
	if h.model == nil || h.last == nil || !h.model.ctrl.Done() {
		return false
	}
	_, ok := h.last().(tea.QuitMsg)
	return ok
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
