package engine

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"

	"go.store/internal/auth"
	"go.store/internal/config"
	"go.store/internal/logger"
	"go.store/internal/storage"
)

// Database is the facade every collaborator outside this package talks
// to: the REPL, the debug printer, anything else that needs a table
// without knowing how pages, pins or B+ tree nodes work.
type Database struct {
	pager *storage.Pager
	tree  *storage.BTree
	log   *logger.Logger
	path  string
}

// Open opens (creating if necessary) the database file at path. If cfg
// requires a passphrase and the file already has one on record, passphrase
// must match it.
func Open(path string, passphrase string, cfg *config.Config) (*Database, error) {
	if cfg.RequirePassphrase {
		if err := auth.Check(path, passphrase); err != nil && err != auth.ErrNoPassphrase {
			return nil, err
		}
	}

	dbname := filepath.Base(path)
	logPath := filepath.Join(cfg.LogDir, dbname+".log")
	log := logger.NewRotating(logPath, cfg.LogMaxSizeMB, cfg.LogMaxBackups, logger.INFO)

	cacheSize := cfg.CacheSize
	if cacheSize < storage.MaxNumLoadedPages {
		cacheSize = storage.MaxNumLoadedPages
	}
	if cacheSize > storage.TableMaxPages {
		cacheSize = storage.TableMaxPages
	}

	pager, err := storage.OpenPagerWithCache(path, cacheSize)
	if err != nil {
		log.Close()
		return nil, errors.Wrap(err, "open database")
	}

	tree := storage.OpenBTree(pager)
	log.Infof("opened database %s", path)

	return &Database{pager: pager, tree: tree, log: log, path: path}, nil
}

// Close flushes every resident page and the file header to disk.
func (db *Database) Close() error {
	db.log.Infof("closing database %s", db.path)
	err := db.pager.Close()
	db.log.Close()
	return err
}

// Insert adds row under key.
func (db *Database) Insert(key uint32, row *storage.Row) error {
	err := db.tree.Insert(key, row)
	if err != nil {
		db.log.Warnf("insert %d: %v", key, err)
	}
	return err
}

// Get returns the row stored under key.
func (db *Database) Get(key uint32) (storage.Row, bool) {
	return db.tree.Get(key)
}

// SelectAll invokes fn for every row in ascending key order.
func (db *Database) SelectAll(fn func(key uint32, row storage.Row)) {
	db.tree.SelectAll(fn)
}

// Delete removes key.
func (db *Database) Delete(key uint32) error {
	err := db.tree.Delete(key)
	if err != nil {
		db.log.Warnf("delete %d: %v", key, err)
	}
	return err
}

// PrintTree writes a dump of the B+ tree's node structure to w.
func (db *Database) PrintTree(w io.Writer) {
	db.tree.PrintTree(w)
}

// SetPassphrase gates future opens of this database behind plain.
func (db *Database) SetPassphrase(plain string) error {
	return auth.SetPassphrase(db.path, plain)
}

// Constants reports the storage layout constants the REPL's .constants
// command prints.
func Constants() map[string]int {
	return map[string]int{
		"ROW_SIZE":                    storage.RowSize,
		"LEAF_NODE_MAX_CELLS":         storage.LeafNodeMaxCells,
		"LEAF_NODE_LEFT_SPLIT_COUNT":  storage.LeafNodeLeftSplitCount,
		"LEAF_NODE_RIGHT_SPLIT_COUNT": storage.LeafNodeRightSplitCount,
		"INTERNAL_NODE_MAX_KEYS":      storage.InternalNodeMaxKeys,
	}
}
