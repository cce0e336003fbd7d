package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	saved := color.Output
	color.Output = &buf
	color.NoColor = true
	defer func() { color.Output = saved }()

	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func setupJournal(t *testing.T) {
	t.Helper()
	t.Setenv("DREAMER_CONFIG_PATH", t.TempDir())
	t.Setenv("DREAMER_PATH", t.TempDir())
	t.Setenv("DREAMER_LOG", "")
}

func TestAddShowDelete(t *testing.T) {
	setupJournal(t)

	if _, err := run(t, "add", "--on", "2024-3-10", "walking", "through", "a", "house"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := run(t, "show", "--on", "2024-3-10")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "walking through a house") {
		t.Fatalf("unexpected show output %q", out)
	}

	out, err = run(t, "years")
	if err != nil {
		t.Fatalf("years: %v", err)
	}
	if !strings.Contains(out, "2024") {
		t.Fatalf("unexpected years output %q", out)
	}

	if _, err := run(t, "delete", "--on", "2024-3-10", "--yes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := run(t, "show", "--on", "2024-3-10"); err == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestShowJSONReportsErrors(t *testing.T) {
	setupJournal(t)

	out, err := run(t, "show", "--on", "2020-1-1", "--json")
	if err != nil {
		t.Fatalf("json errors are printed, not returned: %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCalendarCommand(t *testing.T) {
	setupJournal(t)

	out, err := run(t, "calendar", "--month", "2024-2")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(out, "February 2024") {
		t.Fatalf("unexpected output %q", out)
	}
}
