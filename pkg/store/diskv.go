package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/log"
)

// ErrNotFound is returned when no entry exists for a date.
var ErrNotFound = errors.New("store: entry not found")

// Persistence defines the persistence contract for journal entries. Each
// calendar day holds at most one entry.
type Persistence interface {
	ListAll(ctx context.Context) []*entry.Entry
	Read(key datekey.DateKey) (*entry.Entry, error)
	Store(e *entry.Entry) error
	Delete(key datekey.DateKey) error
	Years(ctx context.Context) []int
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, logger *log.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, logger: log.OrDiscard(logger).WithComponent("store")}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	logger   *log.Logger
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if e.Schema == "" {
		e.Schema = entry.CurrentSchema
	}
	if k, ok := keyToDate(key); ok {
		e.Date = k
	}
	e.EnsureHistorySeed()
	return e, nil
}

func (p *persistence) ListAll(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			p.logger.Warn("skipping unreadable entry", "key", key, "err", err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Read(key datekey.DateKey) (*entry.Entry, error) {
	k := toKey(key)
	if !p.d.Has(k) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return p.read(k)
}

func (p *persistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if !e.Date.Valid() {
		return fmt.Errorf("store: invalid date %s: %w", e.Date, datekey.ErrInvalidComponents)
	}
	if e.Schema == "" {
		e.Schema = entry.CurrentSchema
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.EnsureHistorySeed()
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(e.Date), data); err != nil {
		return fmt.Errorf("store: write %s: %w", e.Date, err)
	}
	return nil
}

func (p *persistence) Delete(key datekey.DateKey) error {
	k := toKey(key)
	if !p.d.Has(k) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return p.d.Erase(k)
}

// Years lists the years that hold at least one entry, ascending. Only keys
// are inspected; entry bodies are not decoded.
func (p *persistence) Years(ctx context.Context) []int {
	seen := make(map[int]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		if k, ok := keyToDate(key); ok {
			seen[k.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		if left.Date == right.Date {
			return left.ID < right.ID
		}
		return left.Date.Before(right.Date)
	})
}

// Keys are YYYY-MM-DD and land on disk as YYYY/MM/DD.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(k datekey.DateKey) string {
	return k.String()
}

func keyToDate(key string) (datekey.DateKey, bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return datekey.DateKey{}, false
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return datekey.DateKey{}, false
		}
		nums[i] = n
	}
	k := datekey.DateKey{Year: nums[0], Month: nums[1], Day: nums[2]}
	return k, k.Valid()
}

// ensureBase creates the journal directory.
func (p *persistence) ensureBase() error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return nil
}
