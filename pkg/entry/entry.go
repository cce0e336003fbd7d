package entry

import (
	"strings"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
)

// CurrentSchema is written to every stored entry.
const CurrentSchema = "v1"

// HistoryAction names a change recorded on an entry.
type HistoryAction string

const (
	HistoryActionAdded  HistoryAction = "added"
	HistoryActionEdited HistoryAction = "edited"
)

// HistoryRecord captures one change to an entry.
type HistoryRecord struct {
	Timestamp Timestamp     `json:"timestamp"`
	Action    HistoryAction `json:"action"`
}

// Entry is a user-authored journal record bound to exactly one DateKey.
type Entry struct {
	ID      string          `json:"id"`
	Schema  string          `json:"schema,omitempty"`
	Date    datekey.DateKey `json:"date"`
	Text    string          `json:"text"`
	Created Timestamp       `json:"created"`
	History []HistoryRecord `json:"history,omitempty"`
}

// New creates an entry for key, stamped with now.
func New(key datekey.DateKey, text string, now time.Time) *Entry {
	e := &Entry{
		Schema:  CurrentSchema,
		Date:    key,
		Text:    text,
		Created: Timestamp{Time: now},
	}
	e.EnsureHistorySeed()
	return e
}

// EnsureHistorySeed adds the initial "added" record to entries that predate
// history tracking.
func (e *Entry) EnsureHistorySeed() {
	if e == nil || len(e.History) > 0 {
		return
	}
	e.History = append(e.History, HistoryRecord{Timestamp: e.Created, Action: HistoryActionAdded})
}

// Clone returns a copy that can be edited without touching e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.History = append([]HistoryRecord(nil), e.History...)
	return &cp
}

// SetText replaces the body and records an edit. It reports whether the text
// changed.
func (e *Entry) SetText(text string, now time.Time) bool {
	if e.Text == text {
		return false
	}
	e.Text = text
	e.History = append(e.History, HistoryRecord{Timestamp: Timestamp{Time: now}, Action: HistoryActionEdited})
	return true
}

// Updated returns the time of the most recent change.
func (e *Entry) Updated() time.Time {
	latest := e.Created.Time
	for _, h := range e.History {
		if h.Timestamp.After(latest) {
			latest = h.Timestamp.Time
		}
	}
	return latest
}

// Empty reports whether the entry has no meaningful text.
func (e *Entry) Empty() bool {
	return e == nil || strings.TrimSpace(e.Text) == ""
}

// Title is the first line of the entry text.
func (e *Entry) Title() string {
	line, _, _ := strings.Cut(strings.TrimSpace(e.Text), "\n")
	return line
}

func (e *Entry) String() string {
	return e.Date.String() + "  " + e.Title()
}
