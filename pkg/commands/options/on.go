package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/datekey"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the date an entry belongs to.
type OnOptions struct {
	OnString string
	// Now defaults to time.Now.
	Now func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-3-10", --on="3/10", --on=today or --on=yesterday.`)
}

func (o *OnOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// GetOn parses the flag. An empty flag yields the zero key.
func (o *OnOptions) GetOn() (datekey.DateKey, error) {
	s := strings.TrimSpace(strings.ToLower(o.OnString))
	switch s {
	case "":
		return datekey.DateKey{}, nil
	case "today":
		return datekey.FromTime(o.now()), nil
	case "yesterday":
		return datekey.FromTime(o.now().AddDate(0, 0, -1)), nil
	}

	if t, err := time.ParseInLocation(layoutISO, s, time.Local); err == nil {
		return datekey.FromTime(t), nil
	}
	// The short layout parses into year 0, which is a leap year, so only
	// month and day are taken from it.
	t, err := time.ParseInLocation(layoutISOShort, s, time.Local)
	if err != nil {
		return datekey.DateKey{}, fmt.Errorf("%w: %q", datekey.ErrInvalidComponents, o.OnString)
	}
	now := o.now()
	k := datekey.DateKey{Day: t.Day(), Month: int(t.Month()), Year: now.Year()}
	// A dream journal records the past: 12/30 typed on 1/2 means last year.
	if datekey.FromTime(now).Before(k) {
		k.Year--
	}
	if !k.Valid() {
		return datekey.DateKey{}, fmt.Errorf("%w: %q is not a date in %d", datekey.ErrInvalidComponents, o.OnString, k.Year)
	}
	return k, nil
}

// RequireOn is GetOn for commands that cannot run without a date.
func (o *OnOptions) RequireOn() (datekey.DateKey, error) {
	k, err := o.GetOn()
	if err != nil {
		return k, err
	}
	if k.IsZero() {
		return k, fmt.Errorf("--on is required")
	}
	return k, nil
}
