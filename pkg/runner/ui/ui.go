// Package ui launches the interactive calendar.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/log"
	teaui "tableflip.dev/dreamer/pkg/tui/app"
)

type UI struct {
	Service *app.Service
	Logger  *log.Logger
	// Watch reloads the calendar when entries change on disk.
	Watch bool
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not start ui, no service")
	}
	return teaui.Run(ctx, d.Service, teaui.Options{
		Clock:  d.Service.Clock,
		Logger: d.Logger,
		Watch:  d.Watch,
	})
}
