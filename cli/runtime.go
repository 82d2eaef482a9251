package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"nexus-daily/app"
	"nexus-daily/config"
	"nexus-daily/model"
	"nexus-daily/store"
)

// runtime is what a command works against: the merged config and a service
// loaded from the configured store.
type runtime struct {
	cfg       *config.Config
	svc       *app.Service
	persister *store.Persister
	// recovery is set when the store repaired or discarded saved data.
	recovery string
	logFile  *os.File
}

func openRuntime(opts *options, logFallback io.Writer) (*runtime, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logFile := setupLogging(cfg.LogFile, logFallback)

	st, err := store.Open(cfg.Backend, cfg.StatePath)
	if err != nil {
		closeLog(logFile)
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	p := store.NewPersister(st, log.Default())

	state, found, recovery := p.Load()
	if !found {
		state.Settings = cfg.Settings()
	}
	log.Printf("loaded state from %s (%s backend, %d tasks)", cfg.StatePath, cfg.Backend, len(state.Tasks))

	return &runtime{
		cfg:       cfg,
		svc:       app.NewService(state),
		persister: p,
		recovery:  recovery,
		logFile:   logFile,
	}, nil
}

// loadConfig merges the config file with the persistent flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.statePath != "" {
		cfg.StatePath = config.ExpandHome(opts.statePath)
	}
	if opts.backend != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(opts.backend))
		if cfg.Backend == store.BackendSQLite && opts.statePath == "" && filepath.Ext(cfg.StatePath) == ".json" {
			cfg.StatePath = strings.TrimSuffix(cfg.StatePath, ".json") + ".db"
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging sends the standard logger to path. When the file cannot be
// opened the logger writes to fallback instead.
func setupLogging(path string, fallback io.Writer) *os.File {
	log.SetFlags(log.Ldate | log.Ltime)
	if path == "" {
		log.SetOutput(fallback)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(fallback)
		log.Printf("Error creating log directory: %v", err)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(fallback)
		log.Printf("Error opening log file: %v", err)
		return nil
	}
	log.SetOutput(f)
	return f
}

func closeLog(f *os.File) {
	log.SetOutput(os.Stderr)
	if f != nil {
		_ = f.Close()
	}
}

// save persists the current state. Commands exit after saving, so a failure
// is returned rather than swallowed.
func (r *runtime) save() error {
	return r.persister.Save(r.svc.State())
}

func (r *runtime) Close() error {
	err := r.persister.Close()
	closeLog(r.logFile)
	return err
}

// withRuntime opens a runtime for the length of fn.
func withRuntime(opts *options, fn func(*runtime) error) error {
	rt, err := openRuntime(opts, os.Stderr)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}

// mutate runs fn and saves when it succeeds.
func mutate(opts *options, fn func(*runtime) (app.Notice, error), w io.Writer) error {
	return withRuntime(opts, func(rt *runtime) error {
		n, err := fn(rt)
		if err != nil {
			return err
		}
		rt.svc.MarkOnboardingSeen()
		if err := rt.save(); err != nil {
			return err
		}
		printNotice(w, n)
		return nil
	})
}

func taskByID(svc *app.Service, id int64) (model.Task, error) {
	t, err := svc.GetTask(id)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %d: %w", id, err)
	}
	return t, nil
}
