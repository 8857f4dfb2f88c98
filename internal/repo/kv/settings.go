package kv

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const keyPrefix = "settings/"

// SettingsStore: хранилище пользовательских настроек поверх badger.
// Значения хранятся как есть; кодирование делает вызывающая сторона.
type SettingsStore struct {
	db *badger.DB
}

// OpenSettings открывает badger в каталоге dir. Пустой dir: режим in-memory (для тестов).
func OpenSettings(dir string, logger *zap.SugaredLogger) (*SettingsStore, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	opts = opts.WithLogger(badgerLogger{logger.Named("badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings db: %w", err)
	}
	return &SettingsStore{db: db}, nil
}

// Close закрывает БД, nil-безопасно.
func (s *SettingsStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get возвращает значение ключа; found=false если ключ не задан.
func (s *SettingsStore) Get(key string) (value []byte, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return value, found, err
}

// Set записывает значение ключа.
func (s *SettingsStore) Set(key string, value []byte) error {
	return s.SetMany(map[string][]byte{key: value})
}

// SetMany записывает несколько ключей одной транзакцией.
func (s *SettingsStore) SetMany(values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for k, v := range values {
			if err := txn.Set([]byte(keyPrefix+k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete удаляет ключ; отсутствие ключа не ошибка.
func (s *SettingsStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + key))
	})
}

// Keys возвращает все заданные ключи по алфавиту.
func (s *SettingsStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}

// badgerLogger переводит логгер badger на zap.
type badgerLogger struct {
	l *zap.SugaredLogger
}

var _ badger.Logger = badgerLogger{}

func (b badgerLogger) Errorf(f string, v ...interface{})   { b.l.Errorf(strings.TrimSpace(f), v...) }
func (b badgerLogger) Warningf(f string, v ...interface{}) { b.l.Warnf(strings.TrimSpace(f), v...) }
func (b badgerLogger) Infof(f string, v ...interface{})    { b.l.Debugf(strings.TrimSpace(f), v...) }
func (b badgerLogger) Debugf(f string, v ...interface{})   { b.l.Debugf(strings.TrimSpace(f), v...) }
