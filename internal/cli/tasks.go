package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todolist/internal/app"
	"todolist/internal/models"
	"todolist/internal/tasklist"
)

// lineSurface is the command-line front-end: the form comes from flags,
// confirmations are read from in, and nothing is drawn until the command
// prints its result.
type lineSurface struct {
	form app.Form
	in   *bufio.Reader
	out  io.Writer
	yes  bool
}

func (s *lineSurface) Values() app.Form { return s.form }

func (s *lineSurface) ClearTitle() { s.form.Title = "" }

// Show is a no-op; commands print the controller's items when they finish.
func (s *lineSurface) Show([]tasklist.Item) {}

func (s *lineSurface) ApplyTheme(bool) {}

// Notify is a no-op; the command returns the error instead.
func (s *lineSurface) Notify(error) {}

func (s *lineSurface) Confirm(prompt string, answer func(bool)) {
	if s.yes {
		answer(true)
		return
	}
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return
	}
	reply := strings.ToLower(strings.TrimSpace(line))
	answer(reply == "y" || reply == "yes")
}

func newLineSurface(cmd *cobra.Command, form app.Form) *lineSurface {
	return &lineSurface{
		form: form,
		in:   bufio.NewReader(cmd.InOrStdin()),
		out:  cmd.OutOrStdout(),
	}
}

// withController opens the store, loads the list through surface and runs
// fn against the controller.
func withController(cmd *cobra.Command, opts *rootOptions, surface *lineSurface, fn func(*app.Controller) error) error {
	e, err := opts.open(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	c := app.New(e.store, surface, e.controllerOptions()...)
	if err := c.Start(cmdContext(cmd)); err != nil {
		return err
	}
	return fn(c)
}

func printItems(w io.Writer, items []tasklist.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for i, item := range items {
		fmt.Fprintf(w, "%3d  #%-4d %s\n", i, item.ID, item.Label)
	}
}

func addCmd(opts *rootOptions) *cobra.Command {
	var priority, category string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task at the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := models.ParsePriority(priority)
			if err != nil {
				return err
			}
			c, err := models.ParseCategory(category)
			if err != nil {
				return err
			}

			surface := newLineSurface(cmd, app.Form{
				Title:    strings.Join(args, " "),
				Priority: p,
				Category: c,
			})
			return withController(cmd, opts, surface, func(ctrl *app.Controller) error {
				before := ctrl.Items()
				if err := ctrl.Add(cmdContext(cmd)); err != nil {
					return err
				}
				for _, item := range ctrl.Items() {
					if !containsID(before, item.ID) {
						fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", item.ID, item.Label)
						return nil
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: the title is empty.")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", string(models.Priorities[0]), "Low, Medium or High")
	cmd.Flags().StringVarP(&category, "category", "c", string(models.Categories[0]), "General, Work, Personal, Reminder or Idea")
	return cmd
}

func listCmd(opts *rootOptions) *cobra.Command {
	var filter tasklist.Filter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := normalizeFilter(filter)
			if err != nil {
				return err
			}
			surface := newLineSurface(cmd, app.Form{Filter: f})
			return withController(cmd, opts, surface, func(ctrl *app.Controller) error {
				printItems(cmd.OutOrStdout(), ctrl.Items())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "show tasks whose title or category contains this text")
	cmd.Flags().StringVarP(&filter.Priority, "priority", "p", "", "show only this priority")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "show only this category")
	return cmd
}

// normalizeFilter maps flag values such as "high" onto the exact names
// the list filter compares against.
func normalizeFilter(f tasklist.Filter) (tasklist.Filter, error) {
	if f.Priority != "" {
		p, err := models.ParsePriority(f.Priority)
		if err != nil {
			return f, err
		}
		f.Priority = string(p)
	}
	if f.Category != "" {
		c, err := models.ParseCategory(f.Category)
		if err != nil {
			return f, err
		}
		f.Category = string(c)
	}
	return f, nil
}

func deleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			surface := newLineSurface(cmd, app.Form{})
			surface.yes = yes
			return withController(cmd, opts, surface, func(ctrl *app.Controller) error {
				if !containsID(ctrl.Items(), id) {
					fmt.Fprintln(cmd.OutOrStdout(), "No task", id)
					return nil
				}
				if err := ctrl.Delete(cmdContext(cmd), id); err != nil {
					return err
				}
				if containsID(ctrl.Items(), id) {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept", id)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func containsID(items []tasklist.Item, id int64) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func moveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move the task at row <from> to row <to>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row %q", args[1])
			}

			surface := newLineSurface(cmd, app.Form{})
			return withController(cmd, opts, surface, func(ctrl *app.Controller) error {
				if err := ctrl.Move(cmdContext(cmd), from, to); err != nil {
					return err
				}
				printItems(cmd.OutOrStdout(), ctrl.Items())
				return nil
			})
		},
	}
}
