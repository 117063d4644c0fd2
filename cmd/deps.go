package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/sources"
	"github.com/abhisek/learnpath/internal/sources/fixture"
	"github.com/abhisek/learnpath/internal/sources/roster"
	"github.com/abhisek/learnpath/internal/sources/scraped"
	"github.com/abhisek/learnpath/internal/store"
)

// deps holds what every command needs: configuration, the logger and the
// source registry. The profile store is opened on demand.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *sources.Registry
	closers  []io.Closer
}

func loadDeps(cmd *cobra.Command) (*deps, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if kind, _ := cmd.Flags().GetString("source"); kind != "" {
		cfg.Source.Kind = kind
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	registry := sources.NewRegistry(
		roster.New(roster.WithLogger(log)),
		scraped.New(scraped.WithLogger(log)),
		fixture.New(fixture.WithSeed(cfg.Fixture.Seed)),
	)
	return &deps{cfg: cfg, log: log, registry: registry}, nil
}

func (d *deps) Close() {
	for _, c := range d.closers {
		_ = c.Close()
	}
	d.log.Sync()
}

// openRepo opens the profile repository selected by store.backend.
func (d *deps) openRepo(cmd *cobra.Command) (store.ProfileRepo, error) {
	switch d.cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemoryRepo(), nil

	case config.BackendFile:
		dir, _ := cmd.Flags().GetString("db")
		if dir == "" {
			dir = d.cfg.Store.Path
		}
		if dir == "" {
			dbPath, err := store.DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve profile dir: %w", err)
			}
			dir = filepath.Join(filepath.Dir(dbPath), "profiles")
		}
		return store.NewFileRepo(dir)

	default:
		dbPath, err := resolveDBPath(cmd, d.cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.closers = append(d.closers, st)
		d.log.Debug("opened profile store", "path", dbPath)
		return st.ProfileRepo(), nil
	}
}

// engine opens the store and builds the progress engine over it.
func (d *deps) engine(cmd *cobra.Command) (*progress.Engine, error) {
	repo, err := d.openRepo(cmd)
	if err != nil {
		return nil, err
	}
	loc, err := d.cfg.Location()
	if err != nil {
		return nil, err
	}
	return progress.NewEngine(repo,
		progress.WithKey(d.cfg.Store.Key),
		progress.WithUsername(d.cfg.Profile.Username),
		progress.WithLocation(loc),
		progress.WithLogger(d.log),
	), nil
}

// loadLessons runs the configured adapter over the content file. The fixture
// source needs no file.
func (d *deps) loadLessons(args []string) (sources.Result, error) {
	adapter, err := d.registry.Lookup(d.cfg.Source.Kind)
	if err != nil {
		return sources.Result{}, err
	}

	var data []byte
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return sources.Result{}, fmt.Errorf("read content: %w", err)
		}
	} else if adapter.Name() != fixture.Name {
		return sources.Result{}, errors.New("a content file is required for the " + adapter.Name() + " source")
	}

	res, err := adapter.Lessons(data)
	if err != nil {
		return sources.Result{}, err
	}
	d.log.Debug("loaded lessons", "source", adapter.Name(), "lessons", len(res.Lessons), "skipped", len(res.Skipped))
	return res, nil
}
