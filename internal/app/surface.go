package app

import (
	"todolist/internal/models"
	"todolist/internal/tasklist"
)

// Form is a snapshot of every input field on a front-end.
type Form struct {
	Title    string
	Priority models.Priority
	Category models.Category
	Filter   tasklist.Filter
}

// Surface is what a front-end (desktop window, terminal, web page, command
// line) provides to the controller.
type Surface interface {
	// Values returns the current contents of the input fields.
	Values() Form
	// ClearTitle empties the title input after a task was added.
	ClearTitle()
	// Show replaces the displayed list.
	Show(items []tasklist.Item)
	// ApplyTheme switches between the dark and the default style.
	ApplyTheme(dark bool)
	// Confirm asks a yes/no question. answer may be called before Confirm
	// returns or later from the front-end's event loop; it is not called
	// when the question is dismissed.
	Confirm(prompt string, answer func(yes bool))
	// Notify reports a failed operation to the user.
	Notify(err error)
}
