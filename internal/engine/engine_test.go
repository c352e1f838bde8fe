package engine_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"go.store/internal/config"
	"go.store/internal/engine"
	"go.store/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Home:          dir,
		LogDir:        filepath.Join(dir, "log"),
		CacheSize:     10,
		LogMaxSizeMB:  1,
		LogMaxBackups: 1,
	}
}

func TestOpenInsertSelectClose(t *testing.T) {
	cfg := testConfig(t)
	dbPath := filepath.Join(t.TempDir(), "db1.db")

	db, err := engine.Open(dbPath, "", cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	row := &storage.Row{ID: 1, Username: "user1", Email: "person1@example.com"}
	if err := db.Insert(1, row); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	db.SelectAll(func(key uint32, r storage.Row) {
		buf.WriteString(r.Username)
	})
	if buf.String() != "user1" {
		t.Fatalf("got %q, want %q", buf.String(), "user1")
	}

	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestReopenAfterClosePreservesData(t *testing.T) {
	cfg := testConfig(t)
	dbPath := filepath.Join(t.TempDir(), "db2.db")

	db, err := engine.Open(dbPath, "", cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for id := uint32(1); id <= 5; id++ {
		if err := db.Insert(id, &storage.Row{ID: id, Username: "u", Email: "e@example.com"}); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := engine.Open(dbPath, "", cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	count := 0
	db2.SelectAll(func(key uint32, r storage.Row) { count++ })
	if count != 5 {
		t.Fatalf("got %d rows after reopen, want 5", count)
	}
}

func TestDuplicateInsertReportsError(t *testing.T) {
	cfg := testConfig(t)
	dbPath := filepath.Join(t.TempDir(), "db3.db")

	db, err := engine.Open(dbPath, "", cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	row := &storage.Row{ID: 1, Username: "user1", Email: "person1@example.com"}
	if err := db.Insert(1, row); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err = db.Insert(1, &storage.Row{ID: 1, Username: "user2", Email: "person2@example.com"})
	if err != storage.ErrDuplicateKey {
		t.Fatalf("got %v, want ErrDuplicateKey", err)
	}
}
