package desktop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"todolist/internal/tasklist"
)

// taskRow is one list row. A single tap selects it and a double tap asks
// to delete the task behind it.
type taskRow struct {
	widget.BaseWidget

	text  *canvas.Text
	index int
	id    int64

	onTap       func(index int)
	onDoubleTap func(id int64)
}

var (
	_ fyne.Tappable       = (*taskRow)(nil)
	_ fyne.DoubleTappable = (*taskRow)(nil)
)

func newTaskRow(onTap func(int), onDoubleTap func(int64)) *taskRow {
	r := &taskRow{
		text:        canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		onTap:       onTap,
		onDoubleTap: onDoubleTap,
	}
	r.ExtendBaseWidget(r)
	return r
}

func (r *taskRow) set(index int, item tasklist.Item) {
	r.index = index
	r.id = item.ID
	r.text.Text = item.Label
	r.text.Color = hexColor(item.Color.Hex())
	r.text.Refresh()
}

func (r *taskRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewPadded(r.text))
}

func (r *taskRow) Tapped(*fyne.PointEvent) {
	if r.onTap != nil {
		r.onTap(r.index)
	}
}

func (r *taskRow) DoubleTapped(*fyne.PointEvent) {
	if r.onDoubleTap != nil {
		r.onDoubleTap(r.id)
	}
}
