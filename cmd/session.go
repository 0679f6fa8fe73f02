package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/cristianoliveira/toasts/internal/config"
	"github.com/cristianoliveira/toasts/internal/logging"
	"github.com/cristianoliveira/toasts/internal/schedule"
	"github.com/cristianoliveira/toasts/internal/storage"
	"github.com/cristianoliveira/toasts/internal/toast"
)

const lockFileName = "toasts.lock"

// session bundles everything a command needs to drive a manager.
type session struct {
	manager   *toast.Manager
	store     storage.Store
	lock      *storage.Lock
	scheduler schedule.Scheduler
	logger    logging.Logger
}

type sessionOptions struct {
	// scheduler and clock default to real timers.
	scheduler schedule.Scheduler
	clock     schedule.Clock
	logger    logging.Logger
	observers []toast.Observer
}

// newStore is replaced in tests.
var newStore = func() (storage.Store, error) {
	return storage.NewFromConfig(toast.DismissedValue)
}

// openSession takes the state lock and builds a manager on top of the
// configured store. Callers must call close.
func openSession(opts sessionOptions) (*session, error) {
	lock := storage.NewLock(filepath.Join(config.Get("state_dir", ""), lockFileName))
	if err := lock.Acquire(); err != nil {
		return nil, err
	}

	store, err := newStore()
	if err != nil {
		_ = lock.Release()
		return nil, fmt.Errorf("open dismissal store: %w", err)
	}

	if opts.scheduler == nil {
		opts.scheduler = schedule.NewTimerScheduler()
	}
	if opts.clock == nil {
		opts.clock = schedule.SystemClock{}
	}
	if opts.logger == nil {
		opts.logger = logging.GetGlobal()
	}

	managerOpts := []toast.Option{
		toast.WithClock(opts.clock),
		toast.WithCapacity(config.GetInt("max_notifications", toast.DefaultCapacity)),
		toast.WithLogger(opts.logger.With("component", "manager")),
	}
	for _, o := range opts.observers {
		managerOpts = append(managerOpts, toast.WithObserver(o))
	}

	return &session{
		manager:   toast.NewManager(store, opts.scheduler, managerOpts...),
		store:     store,
		lock:      lock,
		scheduler: opts.scheduler,
		logger:    opts.logger,
	}, nil
}

// start restores dismissals and seeds the demo items when enabled.
func (s *session) start(seed bool) {
	if seed {
		s.manager.Start()
		return
	}
	s.manager.Restore()
}

func (s *session) close() {
	s.manager.Close()
	s.scheduler.Stop()
	if err := storage.Close(s.store); err != nil {
		s.logger.Warn("failed to close store", "error", err)
	}
	if err := s.lock.Release(); err != nil {
		s.logger.Warn("failed to release lock", "path", s.lock.Path(), "error", err)
	}
}
