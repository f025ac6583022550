package cas

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HashStore = (*BadgerStore)(nil)

// BadgerStore is a HashStore persisted in a badger database.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger forwards badger's warnings and errors to the application logger.
// Info and debug output is dropped.
type badgerLogger struct {
	logger ports.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(zerr.New(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (badgerLogger) Infof(string, ...any)  {}
func (badgerLogger) Debugf(string, ...any) {}

// OpenBadgerStore opens the hash store under <root>/.architect-cache/badger.
func OpenBadgerStore(root string, logger ports.Logger) (*BadgerStore, error) {
	path := domain.DefaultBadgerPath(root)
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", path)
	}

	opts := badger.DefaultOptions(path).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{logger: logger})

	return openBadger(opts, path)
}

// OpenInMemoryBadgerStore opens a store that lives only in memory.
func OpenInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	return openBadger(opts, ":memory:")
}

func openBadger(opts badger.Options, path string) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}
	return &BadgerStore{db: db}, nil
}

// GetHash returns the stored hash for key.
func (s *BadgerStore) GetHash(key string) (string, bool, error) {
	var hash []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		hash, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, zerr.Wrap(err, domain.ErrCacheMiss.Error())
	}
	return string(hash), true, nil
}

// PutHash records hash for key.
func (s *BadgerStore) PutHash(key, hash string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(hash))
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// DeleteHash drops key.
func (s *BadgerStore) DeleteHash(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Save flushes pending writes to disk. Badger owns its own directory, so root is unused.
func (s *BadgerStore) Save(string) error {
	if err := s.db.Sync(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Close releases the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
