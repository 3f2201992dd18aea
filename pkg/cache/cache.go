package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"

	"github.com/dgraph-io/badger/v4"
)

// Store persists analysis results on disk, keyed by analyzer and file content.
type Store struct {
	db *badger.DB

	ttl time.Duration
}

func Open(path string, ttl time.Duration) (*Store, error) {
	if path == "" {
		return nil, errors.New("invalid cache path")
	}

	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))

	if err != nil {
		return nil, err
	}

	return &Store{
		db: db,

		ttl: ttl,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) (*analyzer.Result, bool, error) {
	var result analyzer.Result

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))

		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return &result, true, nil
}

func (s *Store) Set(key string, result *analyzer.Result) error {
	data, err := json.Marshal(result)

	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)

		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}

		return txn.SetEntry(entry)
	})
}

// Key derives the cache key of a file analyzed by the named analyzer.
func Key(name string, file analyzer.File, options *analyzer.AnalyzeOptions) string {
	h := sha256.New()

	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(file.Content)

	if options != nil && len(options.Pages) > 0 {
		data, _ := json.Marshal(options.Pages)
		h.Write(data)
	}

	return "analysis/" + hex.EncodeToString(h.Sum(nil))
}

var _ analyzer.Provider = &Analyzer{}

type Analyzer struct {
	name string

	store    *Store
	provider analyzer.Provider

	logger *slog.Logger
}

// NewAnalyzer returns a provider that serves repeated analyses of identical
// content from the store.
func NewAnalyzer(store *Store, name string, p analyzer.Provider) *Analyzer {
	return &Analyzer{
		name: name,

		store:    store,
		provider: p,

		logger: slog.Default(),
	}
}

func (a *Analyzer) Analyze(ctx context.Context, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Result, error) {
	key := Key(a.name, file, options)

	if result, ok, err := a.store.Get(key); err != nil {
		a.logger.Warn("cache read failed", "analyzer", a.name, "error", err)
	} else if ok {
		a.logger.Debug("cache hit", "analyzer", a.name, "file", file.Name)
		return result, nil
	}

	result, err := a.provider.Analyze(ctx, file, options)

	if err != nil {
		return nil, err
	}

	if err := a.store.Set(key, result); err != nil {
		a.logger.Warn("cache write failed", "analyzer", a.name, "error", err)
	}

	return result, nil
}
