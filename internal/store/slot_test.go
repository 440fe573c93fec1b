package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	value    string
	has      bool
	readErr  error
	writeErr error
	writes   []string
}

func (f *fakeBackend) Read(context.Context) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	if !f.has {
		return "", ErrNotFound
	}
	return f.value, nil
}

func (f *fakeBackend) Write(_ context.Context, value string) error {
	f.writes = append(f.writes, value)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.value, f.has = value, true
	return nil
}

func (f *fakeBackend) Close() error     { return nil }
func (f *fakeBackend) Describe() string { return "fake" }

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)
}

func TestLoadOnFreshFileStoreGeneratesStableDefault(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rtc.txt")
	slot := NewSlot(NewFileBackend(path))

	first, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	_, perr := time.ParseInLocation(TimestampLayout, first, time.Local)
	assert.NoError(t, perr, "default should be a timestamp")

	second, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reopened, err := NewSlot(NewFileBackend(path)).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, reopened)
}

func TestDefaultUsesClock(t *testing.T) {
	backend := &fakeBackend{}
	slot := NewSlot(backend, WithClock(fixedClock))

	got, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 07:05:01", got)
	assert.Equal(t, []string{"2024-03-09 07:05:01"}, backend.writes)
}

func TestSaveOverwritesFileWholesale(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "rtc.txt")
	slot := NewSlot(NewFileBackend(path), WithClock(fixedClock))

	_, err := slot.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, "2024-03-09 07:05:01X"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 07:05:01X", string(data))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 07:05:01X", got)
}

func TestFileReadTrimsTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtc.txt")
	require.NoError(t, os.WriteFile(path, []byte("2020-01-01 00:00:00\n"), 0o644))

	got, err := NewSlot(NewFileBackend(path)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01 00:00:00", got)
}

func TestSaveFailureKeepsAttemptedValue(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{value: "before", has: true}
	slot := NewSlot(backend)

	_, err := slot.Load(ctx)
	require.NoError(t, err)

	backend.writeErr = errors.New("read-only filesystem")
	err = slot.Save(ctx, "after")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "save", perr.Op)
	assert.ErrorIs(t, err, backend.writeErr)

	assert.Equal(t, "after", slot.Value())
	assert.True(t, slot.Pending())
	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "after", got)

	backend.writeErr = nil
	require.NoError(t, slot.Save(ctx, "after"))
	assert.False(t, slot.Pending())
	assert.Equal(t, "after", backend.value)
}

func TestReadErrorFallsBackToDefault(t *testing.T) {
	backend := &fakeBackend{readErr: errors.New("permission denied")}
	slot := NewSlot(backend, WithClock(fixedClock))

	got, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 07:05:01", got)
	assert.Equal(t, []string{"2024-03-09 07:05:01"}, backend.writes)
}

func TestDefaultWriteFailureStillReturnsDefault(t *testing.T) {
	backend := &fakeBackend{writeErr: errors.New("disk full")}
	slot := NewSlot(backend, WithClock(fixedClock))

	got, err := slot.Load(context.Background())
	assert.Equal(t, "2024-03-09 07:05:01", got)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.True(t, slot.Pending())
}

func TestLoadAfterSaveKeepsTrailingWhitespace(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rtc.txt")
	slot := NewSlot(NewFileBackend(path), WithClock(fixedClock))

	_, err := slot.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, "a "))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a ", string(data))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a ", got)
}
