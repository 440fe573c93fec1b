package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/rtc-menu/internal/menu"
	"github.com/atomicstack/rtc-menu/internal/store"
	"github.com/atomicstack/rtc-menu/internal/testutil"
	"github.com/atomicstack/rtc-menu/internal/ui/render"
	"github.com/atomicstack/rtc-menu/internal/ui/state"
)

const fixedTimestamp = "2024-03-09 07:05:01"

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)
}

type controllerFixture struct {
	ctrl     *Controller
	slot     *store.Slot
	path     string
	recorder *testutil.Recorder
}

func newFixture(t *testing.T, items []menu.Item, pageSize int, path string) *controllerFixture {
	t.Helper()
	nav, err := state.NewNavigator(items, pageSize)
	if err != nil {
		t.Fatalf("NewNavigator: %v", err)
	}
	slot := store.NewSlot(store.NewFileBackend(path), store.WithClock(fixedClock))
	rec := &testutil.Recorder{}
	ctrl, err := NewController(nav, state.NewEditSession(), slot, rec, ControllerOptions{Title: "Menu"})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return &controllerFixture{ctrl: ctrl, slot: slot, path: path, recorder: rec}
}

func newDefaultFixture(t *testing.T) *controllerFixture {
	t.Helper()
	return newFixture(t, menu.DefaultItems(), 12, testutil.StorePath(t))
}

// unwritablePath returns a store path whose parent is a regular file.
func unwritablePath(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	return filepath.Join(blocker, "rtc.txt")
}

func readStore(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	return string(data)
}

func TestNewControllerRejectsMissingCollaborators(t *testing.T) {
	if _, err := NewController(nil, nil, nil, nil, ControllerOptions{}); err == nil {
		t.Fatalf("expected error without navigator")
	}
	nav, _ := state.NewNavigator(menu.DefaultItems(), 12)
	if _, err := NewController(nav, nil, nil, nil, ControllerOptions{}); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestSelectEditAppendCommitPersists(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.Handle(Event{Kind: EventSelect})
	if f.ctrl.Mode() != ModeEdit {
		t.Fatalf("expected edit mode, got %s", f.ctrl.Mode())
	}
	if got := f.ctrl.Session().Value(); got != fixedTimestamp {
		t.Fatalf("expected edit buffer seeded with %q, got %q", fixedTimestamp, got)
	}
	f.ctrl.HandleAll([]Event{CharEvent('X'), {Kind: EventCommit}})
	if f.ctrl.Mode() != ModeList {
		t.Fatalf("expected list mode after commit, got %s", f.ctrl.Mode())
	}
	want := fixedTimestamp + "X"
	if got := readStore(t, f.path); got != want {
		t.Fatalf("expected stored %q, got %q", want, got)
	}
	if f.ctrl.Session().Active() {
		t.Fatalf("session should be inactive after commit")
	}
	if text, isErr := f.ctrl.Status(); isErr || text != "Saved" {
		t.Fatalf("expected Saved info, got %q (error=%v)", text, isErr)
	}
}

func TestCommittedTrailingSpaceSurvivesReentry(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{
		{Kind: EventSelect},
		{Kind: EventClear},
		CharEvent('a'),
		CharEvent(' '),
		{Kind: EventCommit},
		{Kind: EventSelect},
	})
	if got := readStore(t, f.path); got != "a " {
		t.Fatalf("expected stored %q, got %q", "a ", got)
	}
	if got := f.ctrl.Session().Value(); got != "a " {
		t.Fatalf("expected edit buffer reseeded with %q, got %q", "a ", got)
	}
}

func TestCancelLeavesStoreUnchanged(t *testing.T) {
	path := testutil.StorePath(t)
	if err := os.WriteFile(path, []byte("2020-01-01 00:00:00"), 0o644); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	f := newFixture(t, menu.DefaultItems(), 12, path)
	f.ctrl.HandleAll([]Event{
		{Kind: EventSelect},
		CharEvent('9'),
		{Kind: EventBackspace},
		{Kind: EventBackspace},
		{Kind: EventCancel},
	})
	if f.ctrl.Mode() != ModeList {
		t.Fatalf("expected list mode after cancel, got %s", f.ctrl.Mode())
	}
	if got := readStore(t, path); got != "2020-01-01 00:00:00" {
		t.Fatalf("cancel must not write, store holds %q", got)
	}
	if f.ctrl.Done() {
		t.Fatalf("cancel must not terminate")
	}
}

func TestBackspaceOnEmptyEditBufferStaysInEdit(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventSelect}, {Kind: EventClear}, {Kind: EventBackspace}})
	if f.ctrl.Mode() != ModeEdit || !f.ctrl.Session().Active() {
		t.Fatalf("expected to remain editing")
	}
	if got := f.ctrl.Session().Value(); got != "" {
		t.Fatalf("expected empty buffer, got %q", got)
	}
}

func TestDeleteWordInEdit(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventSelect}, {Kind: EventDeleteWord}})
	if got := f.ctrl.Session().Value(); got != "2024-03-09 " {
		t.Fatalf("expected time word removed, got %q", got)
	}
}

func TestSaveFailureIsReportedAndValueKept(t *testing.T) {
	f := newFixture(t, menu.DefaultItems(), 12, unwritablePath(t))

	f.ctrl.Handle(Event{Kind: EventSelect})
	if f.ctrl.Mode() != ModeEdit {
		t.Fatalf("a failed default save must not block editing")
	}
	if got := f.ctrl.Session().Value(); got != fixedTimestamp {
		t.Fatalf("expected default timestamp, got %q", got)
	}

	f.ctrl.HandleAll([]Event{{Kind: EventClear}, CharEvent('n'), CharEvent('e'), CharEvent('w'), {Kind: EventCommit}})
	if f.ctrl.Done() {
		t.Fatalf("persistence failure must not be fatal")
	}
	if f.ctrl.Mode() != ModeList {
		t.Fatalf("expected list mode after failed commit, got %s", f.ctrl.Mode())
	}
	text, isErr := f.ctrl.Status()
	if !isErr || !strings.Contains(text, "save") {
		t.Fatalf("expected save error in status, got %q (error=%v)", text, isErr)
	}
	if got := f.slot.Value(); got != "new" {
		t.Fatalf("expected attempted value kept in memory, got %q", got)
	}

	f.ctrl.Handle(Event{Kind: EventSelect})
	if got := f.ctrl.Session().Value(); got != "new" {
		t.Fatalf("re-entering edit should show the unsaved value, got %q", got)
	}
}

func TestSelectOnNonEditableItemIsNoOp(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventDown}, {Kind: EventSelect}})
	if f.ctrl.Mode() != ModeList {
		t.Fatalf("expected list mode, got %s", f.ctrl.Mode())
	}
	if f.ctrl.Navigator().Selected() != 1 {
		t.Fatalf("expected selection to stay on item 1")
	}
	if _, err := os.Stat(f.path); !os.IsNotExist(err) {
		t.Fatalf("non-editable select must not touch the store")
	}
}

func TestExitFromListTerminatesAndDropsLaterEvents(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventExit}, {Kind: EventDown}, {Kind: EventSelect}})
	if !f.ctrl.Done() {
		t.Fatalf("expected terminal state")
	}
	if f.ctrl.Navigator().Selected() != 0 {
		t.Fatalf("events after exit must be dropped")
	}
}

func TestExitFromEditCancelsAndTerminates(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventSelect}, CharEvent('Z'), {Kind: EventExit}})
	if !f.ctrl.Done() {
		t.Fatalf("expected terminal state")
	}
	if f.ctrl.Session().Active() {
		t.Fatalf("session should be cancelled")
	}
	if got := readStore(t, f.path); got != fixedTimestamp {
		t.Fatalf("exit must not commit the edit, store holds %q", got)
	}
}

func TestListNavigationWraps(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventDown}, {Kind: EventDown}})
	if got := f.ctrl.Navigator().Selected(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	f.ctrl.Handle(Event{Kind: EventDown})
	if got := f.ctrl.Navigator().Selected(); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	f.ctrl.Handle(Event{Kind: EventUp})
	if got := f.ctrl.Navigator().Selected(); got != 2 {
		t.Fatalf("expected wrap to 2, got %d", got)
	}
}

func TestTypeAheadJumpsToBestMatch(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.Handle(CharEvent('o'))
	if got := f.ctrl.Navigator().Selected(); got != 1 {
		t.Fatalf("expected jump to Option 2, got %d", got)
	}
	f.ctrl.Handle(CharEvent('3'))
	if got := f.ctrl.Navigator().Selected(); got != 2 {
		t.Fatalf("expected jump to Option 3, got %d", got)
	}
	if f.ctrl.Query() != "o3" {
		t.Fatalf("expected query o3, got %q", f.ctrl.Query())
	}
	f.ctrl.Handle(CharEvent('s'))
	if got := f.ctrl.Navigator().Selected(); got != 0 || f.ctrl.Query() != "s" {
		t.Fatalf("a missing extension should restart the query, got %d %q", got, f.ctrl.Query())
	}
	f.ctrl.Handle(Event{Kind: EventDown})
	if f.ctrl.Query() != "" {
		t.Fatalf("non-char events should clear the query")
	}
}

func TestRenderListLayout(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.Handle(Event{Kind: EventDown})
	f.ctrl.Render(render.Size{W: 30, H: 8}, true)

	texts := f.recorder.Texts()
	want := []testutil.DrawCall{
		{Op: "text", Text: "Menu", At: render.Point{X: 1, Y: 0}, Color: render.ColorHeader},
		{Op: "text", Text: "Set RTC", At: render.Point{X: 1, Y: 1}, Color: render.ColorItemText},
		{Op: "text", Text: "Option 2", At: render.Point{X: 1, Y: 2}, Color: render.ColorSelectedText},
		{Op: "text", Text: "Option 3", At: render.Point{X: 1, Y: 3}, Color: render.ColorItemText},
	}
	if len(texts) != len(want) {
		t.Fatalf("expected %d text calls, got %v", len(want), texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("text call %d: expected %v, got %v", i, want[i], texts[i])
		}
	}
	hl, ok := f.recorder.Find("highlight", render.ColorSelection)
	if !ok || hl.At != (render.Point{X: 1, Y: 2}) || hl.Size != (render.Size{W: 27, H: 1}) {
		t.Fatalf("unexpected highlight %v", hl)
	}
	if _, ok := f.recorder.Find("rect", render.ColorScrollTrack); ok {
		t.Fatalf("scrollbar must be hidden for a single page")
	}
	if f.recorder.Presents != 1 {
		t.Fatalf("expected one present, got %d", f.recorder.Presents)
	}
	if last := f.recorder.Calls[len(f.recorder.Calls)-1]; last.Op != "present" {
		t.Fatalf("present must be the final call, got %v", last)
	}
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	items := []menu.Item{{ID: "long", Label: "a very long label that exceeds width"}}
	f := newFixture(t, items, 12, testutil.StorePath(t))
	f.ctrl.Render(render.Size{W: 13, H: 6}, true)
	texts := f.recorder.Texts()
	if len(texts) < 2 || texts[1].Text != "a very ..." {
		t.Fatalf("expected truncated label, got %v", texts)
	}
}

func TestRenderScrollbarFollowsPage(t *testing.T) {
	items := make([]menu.Item, 25)
	for i := range items {
		items[i] = menu.Item{ID: fmt.Sprintf("i%d", i), Label: fmt.Sprintf("Item %d", i)}
	}
	f := newFixture(t, items, 5, testutil.StorePath(t))
	size := render.Size{W: 30, H: 8}

	f.ctrl.Render(size, true)
	track, ok := f.recorder.Find("rect", render.ColorScrollTrack)
	if !ok || track.At != (render.Point{X: 29, Y: 1}) || track.Size != (render.Size{W: 1, H: 5}) {
		t.Fatalf("unexpected track %v", track)
	}
	thumb, _ := f.recorder.Find("rect", render.ColorScrollThumb)
	if thumb.At != (render.Point{X: 29, Y: 1}) || thumb.Size.H != 1 {
		t.Fatalf("unexpected thumb on first page %v", thumb)
	}

	f.recorder.Reset()
	f.ctrl.Handle(Event{Kind: EventUp})
	f.ctrl.Render(size, true)
	thumb, _ = f.recorder.Find("rect", render.ColorScrollThumb)
	if thumb.At != (render.Point{X: 29, Y: 5}) {
		t.Fatalf("expected thumb at bottom on last page, got %v", thumb)
	}
	texts := f.recorder.Texts()
	if texts[1].Text != "Item 20" || texts[1].At.Y != 1 {
		t.Fatalf("expected last page to start at Item 20, got %v", texts[1])
	}
}

func TestRenderEditViewWrapsAndPlacesCaret(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventSelect}, {Kind: EventClear}})
	for _, r := range "abcdefghij" {
		f.ctrl.Handle(CharEvent(r))
	}
	f.ctrl.Render(render.Size{W: 10, H: 8}, true)

	texts := f.recorder.Texts()
	if len(texts) < 3 {
		t.Fatalf("expected title and two value rows, got %v", texts)
	}
	if texts[0].Text != "Set RTC" {
		t.Fatalf("edit title should be the item label, got %q", texts[0].Text)
	}
	if texts[1].Text != "abcdef" || texts[1].At != (render.Point{X: 2, Y: 2}) {
		t.Fatalf("unexpected first value row %v", texts[1])
	}
	if texts[2].Text != "ghij" || texts[2].At != (render.Point{X: 2, Y: 3}) {
		t.Fatalf("unexpected second value row %v", texts[2])
	}
	caret, ok := f.recorder.Find("rect", render.ColorCaret)
	if !ok || caret.At != (render.Point{X: 6, Y: 3}) {
		t.Fatalf("unexpected caret %v", caret)
	}

	f.recorder.Reset()
	f.ctrl.Render(render.Size{W: 10, H: 8}, false)
	if _, ok := f.recorder.Find("rect", render.ColorCaret); ok {
		t.Fatalf("caret must not be drawn in the hidden blink phase")
	}
}

func TestRenderDoesNotMutateState(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventDown}, {Kind: EventDown}})
	sel, off, mode := f.ctrl.Navigator().Selected(), f.ctrl.Navigator().Offset(), f.ctrl.Mode()
	for i := 0; i < 3; i++ {
		f.ctrl.Render(render.Size{W: 20, H: 6}, i%2 == 0)
	}
	if f.ctrl.Navigator().Selected() != sel || f.ctrl.Navigator().Offset() != off || f.ctrl.Mode() != mode {
		t.Fatalf("render changed controller state")
	}
}

func TestRenderShowsErrorStatus(t *testing.T) {
	f := newFixture(t, menu.DefaultItems(), 12, unwritablePath(t))
	f.ctrl.HandleAll([]Event{{Kind: EventSelect}, {Kind: EventCommit}})
	f.ctrl.Render(render.Size{W: 60, H: 8}, true)
	status, ok := f.recorder.Find("text", render.ColorError)
	if !ok || status.At.Y != 6 || !strings.HasPrefix(status.Text, "Error: save") {
		t.Fatalf("expected error on status row, got %v", status)
	}
}

func TestExpireInfoOnlyClearsMatchingMessage(t *testing.T) {
	f := newDefaultFixture(t)
	f.ctrl.HandleAll([]Event{{Kind: EventSelect}, {Kind: EventCommit}})
	seq := f.ctrl.InfoSeq()
	if f.ctrl.ExpireInfo(seq - 1) {
		t.Fatalf("stale expiry must not clear the info line")
	}
	if !f.ctrl.ExpireInfo(seq) {
		t.Fatalf("expected info line to be cleared")
	}
	if text, _ := f.ctrl.Status(); text != "" {
		t.Fatalf("expected empty status, got %q", text)
	}
}
