package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/log"
	"tableflip.dev/dreamer/pkg/notify"
	"tableflip.dev/dreamer/pkg/store"
)

// loadService reads config, opens the journal and indexes its entries. When
// tui is set, logs go to the configured log file instead of stderr so they
// do not tear the screen; the returned closer releases that file.
func loadService(ctx context.Context, tui bool) (*app.Service, *log.Logger, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: %w", err)
	}

	logger, closer, err := loggerFor(cfg, tui)
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := store.Load(cfg, logger)
	if err != nil {
		closer()
		return nil, nil, nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Changes:     notify.New(),
		Logger:      logger,
	}
	if err := svc.Load(ctx); err != nil {
		closer()
		return nil, nil, nil, err
	}
	return svc, logger, closer, nil
}

func loggerFor(cfg store.Config, tui bool) (*log.Logger, func(), error) {
	level := "warn"
	if cfg.Debug() {
		level = "debug"
	}
	conf := log.DefaultConfig()
	conf.Level = log.Level(level)
	conf.Component = "dreamer"

	var out io.Writer = os.Stderr
	closer := func() {}
	if tui {
		if cfg.LogPath() == "" {
			return log.Discard(), closer, nil
		}
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}
	conf.Output = out

	logger := log.New(conf)
	log.SetDefault(logger)
	return logger, closer, nil
}
