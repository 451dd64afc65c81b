package desktop

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"todolist/internal/config"
	"todolist/internal/models"
	"todolist/internal/store"
)

func setupWindow(t *testing.T) (*Window, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := test.NewTempApp(t)
	w, err := NewWindow(context.Background(), a, s, config.DefaultConfig().App)
	if err != nil {
		t.Fatalf("NewWindow failed: %v", err)
	}
	return w, s
}

func labels(w *Window) []string {
	out := make([]string, len(w.items))
	for i, it := range w.items {
		out[i] = it.Label
	}
	return out
}

func TestWindowScenario(t *testing.T) {
	w, s := setupWindow(t)

	var prompts []string
	w.confirm = func(_, message string, callback func(bool), _ fyne.Window) {
		prompts = append(prompts, message)
		callback(true)
	}

	test.Type(w.title, "Buy milk")
	test.Tap(w.addButton)
	if w.title.Text != "" {
		t.Errorf("expected title to be cleared, got %q", w.title.Text)
	}

	test.Type(w.title, "Pay rent")
	w.priority.SetSelected(string(models.PriorityHigh))
	w.category.SetSelected(string(models.CategoryPersonal))
	w.title.OnSubmitted(w.title.Text)

	want := []string{"Buy milk [Low | General]", "Pay rent [High | Personal]"}
	if got := labels(w); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}

	test.Type(w.search, "rent")
	if got := labels(w); len(got) != 1 || got[0] != want[1] {
		t.Errorf("expected only Pay rent, got %v", got)
	}

	w.search.SetText("")
	w.filterPriority.SetSelected(string(models.PriorityHigh))
	if got := labels(w); len(got) != 1 || got[0] != want[1] {
		t.Errorf("expected only High tasks, got %v", got)
	}

	row := newTaskRow(w.selectRow, w.deleteRow)
	row.set(0, w.items[0])
	test.DoubleTap(row)

	if len(prompts) != 1 || prompts[0] != `Delete "Pay rent"?` {
		t.Errorf("unexpected prompts %v", prompts)
	}
	if len(w.items) != 0 {
		t.Errorf("expected empty list, got %v", labels(w))
	}

	tasks, err := s.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("expected only Buy milk stored, got %+v", tasks)
	}
}

func TestWindowDeclinedDelete(t *testing.T) {
	w, _ := setupWindow(t)
	w.confirm = func(_, _ string, callback func(bool), _ fyne.Window) { callback(false) }

	test.Type(w.title, "Buy milk")
	test.Tap(w.addButton)

	w.deleteRow(w.items[0].ID)
	if len(w.items) != 1 {
		t.Errorf("expected task to be kept, got %v", labels(w))
	}
}

func TestWindowMoveSelected(t *testing.T) {
	w, _ := setupWindow(t)

	for _, title := range []string{"A", "B", "C"} {
		test.Type(w.title, title)
		test.Tap(w.addButton)
	}

	w.selectRow(0)
	test.Tap(w.moveDown)
	test.Tap(w.moveDown)

	var got []string
	for _, it := range w.items {
		got = append(got, it.Title)
	}
	if strings.Join(got, "") != "BCA" {
		t.Errorf("expected BCA, got %v", got)
	}
	if w.selected != 2 {
		t.Errorf("expected selection to follow the task, got %d", w.selected)
	}

	test.Tap(w.moveDown)
	if w.selected != 2 {
		t.Errorf("expected move past the end to be ignored, got %d", w.selected)
	}
}

func TestWindowThemeToggle(t *testing.T) {
	w, _ := setupWindow(t)

	test.Tap(w.themeButton)

	th, ok := w.app.Settings().Theme().(todoTheme)
	if !ok || !th.dark {
		t.Fatalf("expected dark theme, got %#v", w.app.Settings().Theme())
	}
	if c := th.Color(theme.ColorNameBackground, theme.VariantDark); c != darkBackground {
		t.Errorf("unexpected dark background %v", c)
	}
	if !w.controller.Dark() {
		t.Error("expected controller to be in dark mode")
	}
}

func TestWindowNotify(t *testing.T) {
	w, s := setupWindow(t)

	var shown []error
	w.showError = func(err error, _ fyne.Window) { shown = append(shown, err) }
	s.Close()

	test.Type(w.title, "Buy milk")
	test.Tap(w.addButton)

	var storeErr *store.Error
	if len(shown) != 1 || !errors.As(shown[0], &storeErr) {
		t.Fatalf("expected one store error, got %v", shown)
	}
	if w.title.Text != "Buy milk" {
		t.Errorf("expected title to be kept, got %q", w.title.Text)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{models.ColorAlert.Hex(), color.NRGBA{R: 0xff, A: 0xff}},
		{models.ColorCaution.Hex(), color.NRGBA{R: 0x80, G: 0x80, A: 0xff}},
		{models.ColorNormal.Hex(), color.NRGBA{G: 0x80, A: 0xff}},
		{"red", color.Black},
	}

	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
