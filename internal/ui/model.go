package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/rtc-menu/internal/logging/events"
	"github.com/atomicstack/rtc-menu/internal/ui/render"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth   = 40
	defaultHeight  = 16
	defaultInfoTTL = 5 * time.Second
)

// Options configures the Bubble Tea model.
type Options struct {
	// Width and Height pin the frame size; zero follows the terminal.
	Width  int
	Height int
	// PageSize caps the number of items per page.
	PageSize   int
	BlinkCaret bool
	InfoTTL    time.Duration
	Keys       *KeyMap
}

type infoExpiredMsg struct {
	seq int
}

type msgHandler func(tea.Msg) tea.Cmd

// Model adapts the Controller to Bubble Tea: key messages become events,
// window sizes become page sizes, and View presents the controller's canvas.
type Model struct {
	ctrl        *Controller
	canvas      *render.Canvas
	keys        KeyMap
	caret       cursor.Model
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	pageLimit   int
	infoTTL     time.Duration

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model around ctrl, which must draw into canvas.
func NewModel(ctrl *Controller, canvas *render.Canvas, opts Options) *Model {
	m := &Model{
		ctrl:      ctrl,
		canvas:    canvas,
		keys:      DefaultKeyMap(),
		width:     defaultWidth,
		height:    defaultHeight,
		pageLimit: opts.PageSize,
		infoTTL:   opts.InfoTTL,
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	if m.infoTTL <= 0 {
		m.infoTTL = defaultInfoTTL
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.SetChar(" ")
	if !opts.BlinkCaret {
		c.SetMode(cursor.CursorStatic)
	}
	c.Focus()
	m.caret = c
	m.applyPageSize()
	m.registerHandlers()
	return m
}

// Controller exposes the state machine behind the model.
func (m *Model) Controller() *Controller {
	return m.ctrl
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.caret.BlinkCmd()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.ctrl.Done() {
		return ""
	}
	size := render.Size{W: m.width, H: m.height}
	m.canvas.Reset(size)
	m.ctrl.Render(size, m.caretVisible())
	return m.canvas.Frame()
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(infoExpiredMsg{}):    m.handleInfoExpiredMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	var keyMsg tea.KeyMsg
	switch v := msg.(type) {
	case tea.KeyMsg:
		keyMsg = v
	case *tea.KeyMsg:
		keyMsg = *v
	default:
		return nil
	}
	seq := m.ctrl.InfoSeq()
	evs := m.keys.Translate(m.ctrl.Mode(), keyMsg)
	if len(evs) == 0 {
		return nil
	}
	m.ctrl.HandleAll(evs)
	if m.ctrl.Done() {
		return tea.Quit
	}
	var cmds []tea.Cmd
	if next := m.ctrl.InfoSeq(); next != seq {
		cmds = append(cmds, expireInfoAfter(m.infoTTL, next))
	}
	if m.ctrl.Mode() == ModeEdit {
		// Keep the caret solid while typing.
		m.caret.Blink = false
		if cmd := m.caret.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	m.applyPageSize()
	events.UI.Resize(m.width, m.height, m.ctrl.Navigator().PageSize())
	return nil
}

func (m *Model) handleInfoExpiredMsg(msg tea.Msg) tea.Cmd {
	if expired, ok := msg.(infoExpiredMsg); ok {
		m.ctrl.ExpireInfo(expired.seq)
	}
	return nil
}

func (m *Model) applyPageSize() {
	_ = m.ctrl.Navigator().SetPageSize(PageSizeFor(m.height, m.pageLimit))
}

func (m *Model) caretVisible() bool {
	return m.caret.Mode() != cursor.CursorHide && !m.caret.Blink
}

func expireInfoAfter(ttl time.Duration, seq int) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return infoExpiredMsg{seq: seq}
	})
}
