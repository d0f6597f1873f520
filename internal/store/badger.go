package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const (
	prefixTokenRecord = "NFT:TOKEN:"

	gcInterval = 5 * time.Minute
)

// ErrNotFound is returned when no record exists for a token id
var ErrNotFound = errors.New("token not found")

type BadgerStore struct {
	db  *badger.DB
	log *zap.Logger
}

// OpenBadger opens the store at path and runs value log GC until ctx is done
func OpenBadger(ctx context.Context, path string, logger *zap.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	return open(ctx, opts, logger)
}

// OpenInMemory opens a store that keeps nothing on disk
func OpenInMemory(ctx context.Context, logger *zap.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(ctx, opts, logger)
}

func open(ctx context.Context, opts badger.Options, logger *zap.Logger) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	bs := &BadgerStore{db: db, log: logger}
	if !opts.InMemory {
		go bs.runGC(ctx)
	}
	return bs, nil
}

func (bs *BadgerStore) runGC(ctx context.Context) {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		lsm, vlog := bs.db.Size()
		bs.log.Debug("badger size", zap.Int64("lsm", lsm), zap.Int64("vlog", vlog))
		if lsm > 1024*1024*8 || vlog > 1024*1024*32 {
			err := bs.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				bs.log.Warn("badger value log gc", zap.Error(err))
			}
		}
	}
}

func (bs *BadgerStore) Close() error {
	return bs.db.Close()
}

// WriteToken stores the record, replacing any previous version
func (bs *BadgerStore) WriteToken(rec *model.TokenRecord) error {
	if rec.ID == "" {
		return errors.New("token record without id")
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal token record: %w", err)
	}
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey(rec.ID), val)
	})
}

// ReadToken loads one record, ErrNotFound if absent
func (bs *BadgerStore) ReadToken(id string) (*model.TokenRecord, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(tokenKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var rec model.TokenRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token record: %w", err)
	}
	return &rec, nil
}

// ListTokens returns every decodable record in key order. Undecodable ones are logged and skipped.
func (bs *BadgerStore) ListTokens() ([]*model.TokenRecord, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixTokenRecord)
	it := txn.NewIterator(opts)
	defer it.Close()

	var out []*model.TokenRecord
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var rec model.TokenRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			bs.log.Warn("skipping undecodable token record", zap.ByteString("key", it.Item().KeyCopy(nil)), zap.Error(err))
			continue
		}
		out = append(out, &rec)
	}
	return out, nil
}

func tokenKey(id string) []byte {
	return append([]byte(prefixTokenRecord), id...)
}
