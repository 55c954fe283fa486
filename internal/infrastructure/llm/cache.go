package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const cacheKeyPrefix = "extract/v1/"

// OpenCache opens the extraction cache at dir. An empty dir opens an
// in-memory store.
func OpenCache(dir string, logger *slog.Logger) (*badger.DB, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open extraction cache: %w", err)
	}
	return db, nil
}

// CachedExtractor serves repeated extractions of identical text from badger.
type CachedExtractor struct {
	next      port.Extractor
	db        *badger.DB
	namespace string
	ttl       time.Duration
	logger    *slog.Logger
}

// NewCachedExtractor wraps next. Entries are scoped by namespace, usually
// provider and model, and expire after ttl (zero keeps them forever).
func NewCachedExtractor(next port.Extractor, db *badger.DB, namespace string, ttl time.Duration, logger *slog.Logger) *CachedExtractor {
	return &CachedExtractor{
		next:      next,
		db:        db,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

// Extract returns the cached document for (namespace, type, text) or calls
// the wrapped extractor and stores its result. Cache errors never fail an
// extraction.
func (c *CachedExtractor) Extract(ctx context.Context, contractType valueobject.ContractType, text string) ([]byte, error) {
	key := c.key(contractType, text)

	doc, err := c.lookup(key)
	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "extraction cache hit", slog.String("contract_type", contractType.String()))
		return doc, nil
	case !errors.Is(err, badger.ErrKeyNotFound):
		c.logger.WarnContext(ctx, "extraction cache read failed", slog.String("error", err.Error()))
	}

	doc, err = c.next.Extract(ctx, contractType, text)
	if err != nil {
		return nil, err
	}

	if err := c.store(key, doc); err != nil {
		c.logger.WarnContext(ctx, "extraction cache write failed", slog.String("error", err.Error()))
	}
	return doc, nil
}

func (c *CachedExtractor) key(contractType valueobject.ContractType, text string) []byte {
	sum := sha256.Sum256([]byte(c.namespace + "\x00" + contractType.String() + "\x00" + text))
	return []byte(cacheKeyPrefix + hex.EncodeToString(sum[:]))
}

func (c *CachedExtractor) lookup(key []byte) ([]byte, error) {
	var doc []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	return doc, err
}

func (c *CachedExtractor) store(key, doc []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, doc)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// badgerLogger adapts slog to badger's logger. Badger's info output is
// demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
