// Package desktop is the fyne front-end.
package desktop

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"todolist/internal/app"
	"todolist/internal/config"
	"todolist/internal/models"
	"todolist/internal/store"
	"todolist/internal/tasklist"
)

// Window is the main window. It implements app.Surface.
type Window struct {
	ctx        context.Context
	app        fyne.App
	window     fyne.Window
	controller *app.Controller

	title          *widget.Entry
	priority       *widget.Select
	category       *widget.Select
	addButton      *widget.Button
	search         *widget.Entry
	filterPriority *widget.Select
	filterCategory *widget.Select
	list           *widget.List
	moveUp         *widget.Button
	moveDown       *widget.Button
	themeButton    *widget.Button

	items    []tasklist.Item
	selected int

	confirm   func(title, message string, callback func(bool), parent fyne.Window)
	showError func(err error, parent fyne.Window)
}

// NewWindow builds the main window of a and loads the list from s.
func NewWindow(ctx context.Context, a fyne.App, s store.Store, cfg config.AppConfig, opts ...app.Option) (*Window, error) {
	w := &Window{
		ctx:       ctx,
		app:       a,
		window:    a.NewWindow(cfg.Name),
		selected:  -1,
		confirm:   dialog.ShowConfirm,
		showError: dialog.ShowError,
	}
	w.setup()
	w.window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	w.controller = app.New(s, w, opts...)
	w.connect()

	if err := w.controller.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) setup() {
	w.title = widget.NewEntry()
	w.title.SetPlaceHolder("Enter task")

	w.priority = widget.NewSelect(priorityNames(), nil)
	w.priority.SetSelectedIndex(0)
	w.category = widget.NewSelect(categoryNames(), nil)
	w.category.SetSelectedIndex(0)
	w.addButton = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), nil)

	w.search = widget.NewEntry()
	w.search.SetPlaceHolder("Search tasks")
	w.filterPriority = widget.NewSelect(tasklist.PriorityOptions(), nil)
	w.filterPriority.SetSelectedIndex(0)
	w.filterCategory = widget.NewSelect(tasklist.CategoryOptions(), nil)
	w.filterCategory.SetSelectedIndex(0)

	w.list = widget.NewList(
		func() int {
			return len(w.items)
		},
		func() fyne.CanvasObject {
			return newTaskRow(w.selectRow, w.deleteRow)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(w.items) {
				obj.(*taskRow).set(id, w.items[id])
			}
		},
	)

	w.moveUp = widget.NewButtonWithIcon("", theme.MoveUpIcon(), nil)
	w.moveDown = widget.NewButtonWithIcon("", theme.MoveDownIcon(), nil)
	w.themeButton = widget.NewButton("Toggle Dark Mode", nil)

	form := container.NewBorder(nil, nil, nil,
		container.NewHBox(w.priority, w.category, w.addButton),
		w.title,
	)
	filters := container.NewBorder(nil, nil, nil,
		container.NewHBox(w.filterPriority, w.filterCategory),
		w.search,
	)
	controls := container.NewHBox(w.moveUp, w.moveDown, w.themeButton)

	w.window.SetContent(container.NewBorder(
		container.NewVBox(form, filters),
		controls,
		nil, nil,
		w.list,
	))
}

// connect wires the widgets to controller events once the controller
// exists, so that setting initial values does not dispatch anything.
func (w *Window) connect() {
	w.title.OnSubmitted = func(string) { w.add() }
	w.addButton.OnTapped = w.add

	w.search.OnChanged = func(string) { w.dispatch(app.EventSearchChanged) }
	w.filterPriority.OnChanged = func(string) { w.dispatch(app.EventPriorityFilterChanged) }
	w.filterCategory.OnChanged = func(string) { w.dispatch(app.EventCategoryFilterChanged) }

	w.list.OnSelected = func(id widget.ListItemID) { w.selected = id }
	w.list.OnUnselected = func(widget.ListItemID) { w.selected = -1 }

	w.moveUp.OnTapped = func() { w.moveSelected(-1) }
	w.moveDown.OnTapped = func() { w.moveSelected(1) }
	w.themeButton.OnTapped = func() { _ = w.controller.ToggleTheme(w.ctx) }
}

// Controller failures are shown through Notify; the returned errors need
// no further handling here.
func (w *Window) dispatch(name app.EventName) {
	_ = w.controller.Dispatch(w.ctx, app.Event{Name: name})
}

func (w *Window) add() {
	_ = w.controller.Add(w.ctx)
}

func (w *Window) selectRow(index int) {
	w.list.Select(index)
}

func (w *Window) deleteRow(id int64) {
	_ = w.controller.Delete(w.ctx, id)
}

func (w *Window) moveSelected(delta int) {
	from := w.selected
	to := from + delta
	if from < 0 || to < 0 || to >= len(w.items) {
		return
	}
	if err := w.controller.Move(w.ctx, from, to); err == nil {
		w.list.Select(to)
	}
}

// Values implements app.Surface.
func (w *Window) Values() app.Form {
	return app.Form{
		Title:    w.title.Text,
		Priority: models.Priority(w.priority.Selected),
		Category: models.Category(w.category.Selected),
		Filter: tasklist.Filter{
			Search:   w.search.Text,
			Priority: w.filterPriority.Selected,
			Category: w.filterCategory.Selected,
		},
	}
}

// ClearTitle implements app.Surface.
func (w *Window) ClearTitle() { w.title.SetText("") }

// Show implements app.Surface.
func (w *Window) Show(items []tasklist.Item) {
	w.items = items
	w.list.UnselectAll()
	w.selected = -1
	w.list.Refresh()
}

// ApplyTheme implements app.Surface.
func (w *Window) ApplyTheme(dark bool) {
	w.app.Settings().SetTheme(todoTheme{dark: dark})
}

// Confirm implements app.Surface.
func (w *Window) Confirm(prompt string, answer func(bool)) {
	w.confirm("Delete Task", prompt, answer, w.window)
}

// Notify implements app.Surface.
func (w *Window) Notify(err error) {
	w.showError(err, w.window)
}

// FollowTheme applies dark mode values received on themes until the
// channel is closed or ctx is done.
func (w *Window) FollowTheme(ctx context.Context, themes <-chan bool) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case dark, ok := <-themes:
				if !ok {
					return
				}
				fyne.Do(func() { w.controller.SetDarkMode(dark) })
			}
		}
	}()
}

// ShowAndRun shows the window and runs the fyne event loop.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}

func priorityNames() []string {
	names := make([]string, len(models.Priorities))
	for i, p := range models.Priorities {
		names[i] = string(p)
	}
	return names
}

func categoryNames() []string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return names
}
