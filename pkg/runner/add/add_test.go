package add

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/notify"
	"tableflip.dev/dreamer/pkg/printers"
	"tableflip.dev/dreamer/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{
		Persistence: p,
		Changes:     notify.New(),
		Clock:       func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local) },
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load service: %v", err)
	}
	return svc
}

func TestAddCreatesAndAppends(t *testing.T) {
	svc := newService(t)
	var buf bytes.Buffer
	key := datekey.DateKey{Day: 10, Month: 3, Year: 2024}

	a := Add{Service: svc, On: key, Text: "a lighthouse", Printer: &printers.PrettyPrint{Out: &buf}}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(buf.String(), "a lighthouse") {
		t.Fatalf("expected entry echoed, got %q", buf.String())
	}

	a = Add{Service: svc, On: key, Text: "then the sea", Append: true, Printer: &printers.PrettyPrint{Out: &buf}}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("append: %v", err)
	}
	e, ok := svc.Entry(key)
	if !ok {
		t.Fatal("entry missing")
	}
	if e.Text != "a lighthouse\n\nthen the sea" {
		t.Fatalf("unexpected text %q", e.Text)
	}
}

func TestAddRejectsInvalidDate(t *testing.T) {
	svc := newService(t)
	a := Add{Service: svc, On: datekey.DateKey{Day: 30, Month: 2, Year: 2024}, Text: "x"}
	if err := a.Do(context.Background()); !errors.Is(err, datekey.ErrInvalidComponents) {
		t.Fatalf("expected ErrInvalidComponents, got %v", err)
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	svc := newService(t)
	a := Add{Service: svc, On: datekey.DateKey{Day: 1, Month: 2, Year: 2024}, Text: "   "}
	if err := a.Do(context.Background()); !errors.Is(err, app.ErrEmptyEntry) {
		t.Fatalf("expected ErrEmptyEntry, got %v", err)
	}
}
