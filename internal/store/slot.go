package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/rtc-menu/internal/logging"
	"github.com/atomicstack/rtc-menu/internal/logging/events"
	"go.uber.org/zap"
)

// TimestampLayout is the format of the generated default value.
const TimestampLayout = "2006-01-02 15:04:05"

// Backend is a durable home for a single string value.
type Backend interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, value string) error
	Close() error
	Describe() string
}

// Slot owns the configured value: it generates a default on first use and
// remembers the last attempted value when a write fails so the running
// session never loses an edit. The backend is read once; afterwards the
// in-memory value is authoritative.
type Slot struct {
	backend Backend
	now     func() time.Time

	mu     sync.Mutex
	value  string
	loaded bool
	dirty  bool
}

// Option customises a Slot.
type Option func(*Slot)

// WithClock replaces time.Now for default generation.
func WithClock(now func() time.Time) Option {
	return func(s *Slot) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSlot wraps backend.
func NewSlot(backend Backend, opts ...Option) *Slot {
	s := &Slot{backend: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored value. A missing or unreadable value is replaced by
// a freshly generated timestamp which is written back immediately; if that
// write fails the timestamp is still returned alongside the error. Later
// calls return the value held in memory.
func (s *Slot) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.value, nil
	}
	value, err := s.backend.Read(ctx)
	if err == nil {
		s.value = value
		s.loaded = true
		events.Store.Load(s.backend.Describe(), false)
		return value, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logging.Warn("store read failed, using default", zap.Error(err), zap.String("backend", s.backend.Describe()))
	}
	value = s.now().Format(TimestampLayout)
	s.value = value
	s.loaded = true
	events.Store.Load(s.backend.Describe(), true)
	if werr := s.backend.Write(ctx, value); werr != nil {
		s.dirty = true
		perr := &PersistenceError{Op: "save default", Backend: s.backend.Describe(), Err: werr}
		events.Store.Failure(perr)
		return value, perr
	}
	return value, nil
}

// Save records value in memory, then persists it.
func (s *Slot) Save(ctx context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.loaded = true
	if err := s.backend.Write(ctx, value); err != nil {
		s.dirty = true
		perr := &PersistenceError{Op: "save", Backend: s.backend.Describe(), Err: err}
		events.Store.Failure(perr)
		return perr
	}
	s.dirty = false
	events.Store.Save(s.backend.Describe(), len(value))
	return nil
}

// Value returns the in-memory value without touching the backend.
func (s *Slot) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Pending reports whether the in-memory value has not reached the backend.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Slot) Describe() string {
	return s.backend.Describe()
}

func (s *Slot) Close() error {
	return s.backend.Close()
}
