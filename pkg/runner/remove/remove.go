// Package remove deletes a journal entry from the command line.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/datekey"
)

// ErrNotConfirmed is returned when the user declines the deletion.
var ErrNotConfirmed = errors.New("delete not confirmed")

type Remove struct {
	Service *app.Service
	On      datekey.DateKey
	// Confirm asks the user before deleting; nil deletes without asking.
	Confirm func(prompt string) bool

	Out io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not delete, no service")
	}
	e, ok := r.Service.Entry(r.On)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrNotFound, r.On)
	}
	if r.Confirm != nil && !r.Confirm(fmt.Sprintf("Delete the entry for %s (%q)?", r.On, e.Title())) {
		return ErrNotConfirmed
	}
	if err := r.Service.Delete(r.On); err != nil {
		return err
	}

	out := r.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "deleted %s\n", r.On)
	return nil
}
