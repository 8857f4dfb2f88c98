package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Wardrobe/internal/repo"
	"Wardrobe/internal/repo/kv"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options configure Open.
type Options struct {
	// DBPath is the SQLite file holding every collection.
	DBPath string
	// SettingsDir is the badger directory for settings. Empty keeps settings in memory.
	SettingsDir string

	Logger *zap.SugaredLogger
	// Now overrides the clock used for dateAdded, deletedDate and exportDate.
	Now func() time.Time
}

// Store is the local persistence layer. Every multi-collection mutation runs in one transaction.
type Store struct {
	db       *gorm.DB
	repos    *repo.Repositories
	settings *kv.SettingsStore
	log      *zap.SugaredLogger
	now      func() time.Time

	closeOnce sync.Once
	closeErr  error
}

// Open opens (creating when needed) the database and the settings store.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	db, err := repo.InitDB(opts.DBPath)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		_ = repo.CloseDB(db)
		return nil, &StorageError{Op: "open", Err: err}
	}

	settings, err := kv.OpenSettings(opts.SettingsDir, opts.Logger)
	if err != nil {
		_ = repo.CloseDB(db)
		return nil, &StorageError{Op: "open settings", Err: err}
	}

	opts.Logger.Debugw("store opened", "db", opts.DBPath, "settings", opts.SettingsDir)
	return &Store{
		db:       db,
		repos:    repo.NewRepositories(db),
		settings: settings,
		log:      opts.Logger,
		now:      opts.Now,
	}, nil
}

// Close releases both engines. Safe on a nil Store and on repeated calls.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		var result *multierror.Error
		if err := s.settings.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close settings: %w", err))
		}
		if err := repo.CloseDB(s.db); err != nil {
			result = multierror.Append(result, fmt.Errorf("close db: %w", err))
		}
		s.closeErr = result.ErrorOrNil()
	})
	return s.closeErr
}

// inTx runs fn inside one transaction with repositories bound to it.
// fn must not touch s.repos: the pool has a single connection.
func (s *Store) inTx(ctx context.Context, op string, fn func(r *repo.Repositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repo.NewRepositories(tx))
	})
	return wrap(op, err)
}
