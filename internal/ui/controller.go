package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/rtc-menu/internal/logging/events"
	"github.com/atomicstack/rtc-menu/internal/ui/render"
	"github.com/atomicstack/rtc-menu/internal/ui/state"
)

// Mode is the controller's input mode.
type Mode int

const (
	ModeList Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeEdit:
		return "edit"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// DefaultIOTimeout bounds each load and save.
const DefaultIOTimeout = time.Second

// ValueStore is the persisted value behind the editable item.
type ValueStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
}

// ControllerOptions carries the presentation settings of a Controller.
type ControllerOptions struct {
	Title     string
	IOTimeout time.Duration
	// Footer returns the key help line for a mode. Nil hides the footer.
	Footer func(Mode) string
}

// Controller owns the list/edit state machine. It is driven by logical
// events and draws itself through a render.Renderer.
type Controller struct {
	nav      *state.Navigator
	session  *state.EditSession
	store    ValueStore
	renderer render.Renderer
	opts     ControllerOptions

	mode    Mode
	done    bool
	query   string
	errMsg  string
	infoMsg string
	infoSeq int
}

// NewController wires the collaborators together. The controller starts in
// list mode with the navigator's current selection.
func NewController(nav *state.Navigator, session *state.EditSession, store ValueStore, renderer render.Renderer, opts ControllerOptions) (*Controller, error) {
	if nav == nil || nav.Len() == 0 {
		return nil, fmt.Errorf("controller needs a navigator: %w", state.ErrInvalidState)
	}
	if session == nil {
		session = state.NewEditSession()
	}
	if store == nil {
		return nil, errors.New("controller needs a value store")
	}
	if opts.IOTimeout <= 0 {
		opts.IOTimeout = DefaultIOTimeout
	}
	return &Controller{
		nav:      nav,
		session:  session,
		store:    store,
		renderer: renderer,
		opts:     opts,
	}, nil
}

func (c *Controller) Mode() Mode                  { return c.mode }
func (c *Controller) Done() bool                  { return c.done }
func (c *Controller) Navigator() *state.Navigator { return c.nav }
func (c *Controller) Session() *state.EditSession { return c.session }
func (c *Controller) Query() string               { return c.query }

// Status returns the transient status line and whether it is an error.
func (c *Controller) Status() (string, bool) {
	if c.errMsg != "" {
		return c.errMsg, true
	}
	return c.infoMsg, false
}

// InfoSeq identifies the current info message so a delayed expiry only clears
// the message it was scheduled for.
func (c *Controller) InfoSeq() int { return c.infoSeq }

// ExpireInfo clears the info line if it is still message seq.
func (c *Controller) ExpireInfo(seq int) bool {
	if seq != c.infoSeq || c.infoMsg == "" {
		return false
	}
	c.infoMsg = ""
	return true
}

// HandleAll applies events in order. Events after the terminal transition are
// dropped.
func (c *Controller) HandleAll(evs []Event) {
	for _, ev := range evs {
		if c.done {
			return
		}
		c.Handle(ev)
	}
}

// Handle applies a single event.
func (c *Controller) Handle(ev Event) {
	if c.done {
		return
	}
	if ev.Kind != EventChar {
		c.query = ""
	}
	switch c.mode {
	case ModeList:
		c.handleList(ev)
	case ModeEdit:
		c.handleEdit(ev)
	}
}

func (c *Controller) handleList(ev Event) {
	switch ev.Kind {
	case EventUp:
		c.move(c.nav.MoveUp)
	case EventDown:
		c.move(c.nav.MoveDown)
	case EventSelect:
		c.selectCurrent()
	case EventExit:
		c.finish("exit")
	case EventChar:
		c.jump(ev.Char)
	}
}

func (c *Controller) move(step func() error) {
	if err := step(); err != nil {
		c.setError(err)
		return
	}
	c.errMsg = ""
	events.UI.Cursor(c.nav.Selected(), c.nav.Offset())
}

func (c *Controller) selectCurrent() {
	item, err := c.nav.SelectedItem()
	if err != nil {
		c.setError(err)
		return
	}
	if !item.Editable {
		events.UI.SelectNoOp(c.nav.Selected(), item.Label)
		return
	}
	ctx, cancel := c.ioContext()
	defer cancel()
	value, err := c.store.Load(ctx)
	if err != nil {
		// The value is still usable; the failure only means it is not on disk.
		c.setError(err)
	} else {
		c.errMsg = ""
	}
	c.session.Start(value)
	events.Edit.Start(value)
	c.setMode(ModeEdit)
}

// jump implements type-ahead: the query grows with each character and the
// cursor follows the best match. A character that extends the query into a
// miss starts a new query.
func (c *Controller) jump(r rune) {
	query := c.query + string(r)
	idx := c.nav.Find(query)
	if idx < 0 && c.query != "" {
		query = string(r)
		idx = c.nav.Find(query)
	}
	c.query = query
	if idx < 0 {
		return
	}
	if err := c.nav.Select(idx); err != nil {
		c.setError(err)
		return
	}
	events.UI.Jump(query, idx)
}

func (c *Controller) handleEdit(ev Event) {
	switch ev.Kind {
	case EventChar:
		if c.session.Active() && c.session.AppendChar(ev.Char) {
			events.Edit.Append(c.session.Value())
		}
	case EventBackspace:
		if c.session.Active() && c.session.Backspace() {
			events.Edit.Backspace(c.session.Value())
		}
	case EventDeleteWord:
		if c.session.Active() && c.session.DeleteWordBackward() {
			events.Edit.WordBackspace(c.session.Value())
		}
	case EventClear:
		if c.session.Active() && c.session.Clear() {
			events.Edit.Cleared()
		}
	case EventCommit:
		if c.session.Active() {
			c.commit()
		}
	case EventCancel:
		c.session.Cancel()
		events.Edit.Cancel()
		c.setMode(ModeList)
	case EventExit:
		c.session.Cancel()
		events.Edit.Cancel()
		c.finish("exit from edit")
	}
}

func (c *Controller) commit() {
	value := c.session.Commit()
	events.Edit.Commit(value)
	ctx, cancel := c.ioContext()
	defer cancel()
	if err := c.store.Save(ctx, value); err != nil {
		c.setError(err)
	} else {
		c.errMsg = ""
		c.setInfo("Saved")
	}
	c.setMode(ModeList)
}

func (c *Controller) finish(reason string) {
	c.done = true
	events.App.Exit(reason)
}

func (c *Controller) setMode(mode Mode) {
	if c.mode == mode {
		return
	}
	events.UI.Mode(c.mode.String(), mode.String())
	c.mode = mode
}

func (c *Controller) setError(err error) {
	c.errMsg = err.Error()
}

func (c *Controller) setInfo(msg string) {
	c.infoMsg = msg
	c.infoSeq++
}

func (c *Controller) ioContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.opts.IOTimeout)
}

// ReportError shows err on the status line, for failures that happen outside
// event handling such as the startup load.
func (c *Controller) ReportError(err error) {
	if err != nil {
		c.setError(err)
	}
}
