// Package ui contains the Bubble Tea program that drives the menu.
// The package is split so the Controller owns the list/edit state machine and
// knows nothing about Bubble Tea, while Model adapts it to the event loop.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry.
//   - Key messages are translated by KeyMap into logical Events for the
//     controller's current mode (internal/ui/keymap.go) and applied in order
//     with Controller.HandleAll. A terminal transition returns tea.Quit.
//   - Window size messages resize the navigator's page.
//
// State ownership:
//   - Selection and paging live in internal/ui/state.Navigator; the edit
//     buffer lives in internal/ui/state.EditSession.
//   - The persisted value is owned by the ValueStore (internal/store.Slot in
//     production). Loads and saves are synchronous and bounded by a timeout.
//
// Rendering:
//   - Controller.Render issues draw calls on a render.Renderer and presents.
//     Model.View uses a render.Canvas and returns its frame.
package ui
