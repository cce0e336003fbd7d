// Package add writes a journal entry from the command line.
package add

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/printers"
)

type Add struct {
	Service *app.Service
	On      datekey.DateKey
	Text    string
	// Append adds Text as a new paragraph of an existing entry instead of
	// replacing it.
	Append bool

	Printer *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if !n.On.Valid() {
		return datekey.ErrInvalidComponents
	}

	text := strings.TrimSpace(n.Text)
	if existing, ok := n.Service.Entry(n.On); ok && n.Append && !existing.Empty() {
		text = existing.Text + "\n\n" + text
	}
	e, err := n.Service.Write(n.On, text)
	if err != nil {
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{Now: n.Service.Clock}
	}
	pp.Entry(e)
	return nil
}
