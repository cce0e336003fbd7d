package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
)

func newTestPersistence(t *testing.T) (Persistence, string) {
	t.Helper()
	base := t.TempDir()
	p, err := Load(StaticConfig{Path: base}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p, base
}

func TestStoreAndRead(t *testing.T) {
	p, base := newTestPersistence(t)
	key := datekey.DateKey{Day: 10, Month: 3, Year: 2024}
	e := entry.New(key, "flying over mountains", time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC))

	if err := p.Store(e); err != nil {
		t.Fatalf("store: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if _, err := os.Stat(filepath.Join(base, "2024", "03", "10")); err != nil {
		t.Fatalf("expected entry file on disk: %v", err)
	}

	got, err := p.Read(key)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Text != e.Text || got.ID != e.ID || got.Date != key {
		t.Fatalf("read back %+v, want %+v", got, e)
	}
}

func TestReadMissing(t *testing.T) {
	p, _ := newTestPersistence(t)
	_, err := p.Read(datekey.DateKey{Day: 1, Month: 1, Year: 2020})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := p.Delete(datekey.DateKey{Day: 1, Month: 1, Year: 2020}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestStoreRejectsInvalidDate(t *testing.T) {
	p, _ := newTestPersistence(t)
	e := entry.New(datekey.DateKey{Day: 30, Month: 2, Year: 2024}, "never", time.Now())
	if err := p.Store(e); !errors.Is(err, datekey.ErrInvalidComponents) {
		t.Fatalf("expected ErrInvalidComponents, got %v", err)
	}
}

func TestListAllAndYears(t *testing.T) {
	p, _ := newTestPersistence(t)
	keys := []datekey.DateKey{
		{Day: 5, Month: 7, Year: 2024},
		{Day: 31, Month: 12, Year: 2022},
		{Day: 1, Month: 1, Year: 2024},
	}
	for _, k := range keys {
		if err := p.Store(entry.New(k, "dream "+k.String(), time.Now())); err != nil {
			t.Fatalf("store %s: %v", k, err)
		}
	}

	ctx := context.Background()
	all := p.ListAll(ctx)
	var order []datekey.DateKey
	for _, e := range all {
		order = append(order, e.Date)
	}
	want := []datekey.DateKey{keys[1], keys[2], keys[0]}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("ListAll order %v, want %v", order, want)
	}

	if years := p.Years(ctx); !reflect.DeepEqual(years, []int{2022, 2024}) {
		t.Fatalf("Years = %v", years)
	}

	if err := p.Delete(keys[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if years := p.Years(ctx); !reflect.DeepEqual(years, []int{2024}) {
		t.Fatalf("Years after delete = %v", years)
	}
}

func TestKeyTransformsRoundTrip(t *testing.T) {
	pk := keyToPathTransform("2024-03-10")
	if !reflect.DeepEqual(pk.Path, []string{"2024", "03"}) || pk.FileName != "10" {
		t.Fatalf("unexpected path key %+v", pk)
	}
	if got := pathToKeyTransform(pk); got != "2024-03-10" {
		t.Fatalf("inverse = %q", got)
	}
	if _, ok := keyToDate("2024-02-30"); ok {
		t.Fatal("expected impossible date to be rejected")
	}
}
