package calendar

import (
	"bytes"
	"context"
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

func TestCalendar(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	now := func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local) }
	svc := &app.Service{Persistence: p, Changes: notify.New(), Clock: now}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := svc.Write(datekey.DateKey{Day: 2, Month: 3, Year: 2024}, "glass river"); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name  string
		cal   Calendar
		want  []string
		avoid []string
	}{
		{
			name: "current month",
			want: []string{"March 2024", "Su Mo Tu We Th Fr Sa"},
		},
		{
			name:  "long",
			cal:   Calendar{Long: true},
			want:  []string{"March 2024", " 2 S  glass river"},
			avoid: []string{"Su Mo"},
		},
		{
			name:  "explicit month",
			cal:   Calendar{Month: time.Date(2023, 11, 20, 0, 0, 0, 0, time.Local)},
			want:  []string{"November 2023"},
			avoid: []string{"March"},
		},
		{
			name: "year",
			cal:  Calendar{Year: 2024},
			want: []string{"January 2024", "December 2024"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := tt.cal
			c.Service = svc
			c.Printer = &printers.PrettyPrint{Out: &buf, Now: now}
			if err := c.Do(context.Background()); err != nil {
				t.Fatalf("do: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("missing %q in %q", w, buf.String())
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(buf.String(), a) {
					t.Errorf("unexpected %q in %q", a, buf.String())
				}
			}
		})
	}
}
