package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/rtc-menu/internal/logging"
	"github.com/atomicstack/rtc-menu/internal/menu"
	"github.com/atomicstack/rtc-menu/internal/store"
	"github.com/atomicstack/rtc-menu/internal/theme"
	"github.com/atomicstack/rtc-menu/internal/ui"
	"github.com/atomicstack/rtc-menu/internal/ui/render"
	"github.com/atomicstack/rtc-menu/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Config describes user-provided application options.
type Config struct {
	StorePath     string
	Backend       string
	Slot          string
	PageSize      int
	FPS           int
	Width         int
	Height        int
	ShowFooter    bool
	Title         string
	Items         []string
	EditableIndex int
	IOTimeout     time.Duration
}

// Program is a built but not yet running menu.
type Program struct {
	Model *ui.Model
	Slot  *store.Slot
}

// Close releases the store.
func (p *Program) Close() error {
	if p == nil || p.Slot == nil {
		return nil
	}
	return p.Slot.Close()
}

// Build opens the store, loads the current value and assembles the model.
// A value that cannot be persisted is reported on the status line rather
// than failing startup.
func Build(ctx context.Context, cfg Config) (*Program, error) {
	items := menu.DefaultItems()
	if len(cfg.Items) > 0 {
		var err error
		if items, err = menu.FromLabels(cfg.Items, cfg.EditableIndex); err != nil {
			return nil, fmt.Errorf("build menu: %w", err)
		}
	}
	nav, err := state.NewNavigator(items, cfg.PageSize)
	if err != nil {
		return nil, err
	}

	timeout := cfg.IOTimeout
	if timeout <= 0 {
		timeout = ui.DefaultIOTimeout
	}
	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	slot, err := store.Open(openCtx, cfg.Backend, cfg.StorePath, cfg.Slot)
	if err != nil {
		return nil, err
	}
	value, loadErr := slot.Load(openCtx)
	logging.Info("store ready", zap.String("backend", slot.Describe()), zap.String("value", value))

	canvas := render.NewCanvas(render.Size{W: cfg.Width, H: cfg.Height}, theme.Default())
	opts := ui.ControllerOptions{Title: cfg.Title, IOTimeout: timeout}
	if opts.Title == "" {
		opts.Title = menu.DefaultTitle
	}
	keys := ui.DefaultKeyMap()
	if cfg.ShowFooter {
		opts.Footer = ui.FooterFunc(keys)
	}
	ctrl, err := ui.NewController(nav, state.NewEditSession(), slot, canvas, opts)
	if err != nil {
		_ = slot.Close()
		return nil, err
	}
	ctrl.ReportError(loadErr)

	model := ui.NewModel(ctrl, canvas, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		PageSize:   cfg.PageSize,
		BlinkCaret: true,
		Keys:       &keys,
	})
	return &Program{Model: model, Slot: slot}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	prog, err := Build(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := prog.Close(); cerr != nil {
			logging.Error(fmt.Errorf("close store: %w", cerr))
		}
	}()
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	program := tea.NewProgram(prog.Model, tea.WithAltScreen(), tea.WithFPS(fps))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
