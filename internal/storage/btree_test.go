package storage_test

import (
	"path/filepath"
	"testing"

	"go.store/internal/storage"
)

func openTree(t *testing.T) (*storage.BTree, *storage.Pager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	pager, err := storage.OpenPager(path)
	if err != nil {
		t.Fatalf("OpenPager: %v", err)
	}
	return storage.OpenBTree(pager), pager, path
}

func row(id uint32) *storage.Row {
	return &storage.Row{ID: id, Username: "user", Email: "user@example.com"}
}

func TestInsertThenSelectReturnsAscendingOrder(t *testing.T) {
	tree, pager, _ := openTree(t)
	defer pager.Close()

	ids := []uint32{3, 1, 2}
	for _, id := range ids {
		if err := tree.Insert(id, row(id)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	var got []uint32
	tree.SelectAll(func(key uint32, r storage.Row) { got = append(got, key) })
	want := []uint32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestInsertDuplicateKeyFails(t *testing.T) {
	tree, pager, _ := openTree(t)
	defer pager.Close()

	if err := tree.Insert(1, row(1)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := tree.Insert(1, row(1))
	if err != storage.ErrDuplicateKey {
		t.Fatalf("got %v, want ErrDuplicateKey", err)
	}

	got, ok := tree.Get(1)
	if !ok || got.Username != "user" {
		t.Fatalf("unexpected row after rejected duplicate: %+v ok=%v", got, ok)
	}
}

func TestLeafSplitOnOverflow(t *testing.T) {
	tree, pager, _ := openTree(t)
	defer pager.Close()

	for id := uint32(1); id <= 14; id++ {
		if err := tree.Insert(id, row(id)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	var got []uint32
	tree.SelectAll(func(key uint32, r storage.Row) { got = append(got, key) })
	if len(got) != 14 {
		t.Fatalf("got %d rows, want 14", len(got))
	}
	for i, id := range got {
		if id != uint32(i+1) {
			t.Fatalf("row %d out of order: %v", i, got)
		}
	}
}

func TestInsertDeleteSearchNotFound(t *testing.T) {
	tree, pager, _ := openTree(t)
	defer pager.Close()

	if err := tree.Insert(1, row(1)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tree.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := tree.Get(1); ok {
		t.Fatalf("expected key 1 to be gone")
	}
	if err := tree.Delete(1); err != storage.ErrKeyNotFound {
		t.Fatalf("got %v, want ErrKeyNotFound", err)
	}
}

func TestInsertThenDeleteOneMidSequence(t *testing.T) {
	tree, pager, _ := openTree(t)
	defer pager.Close()

	for id := uint32(1); id <= 14; id++ {
		if err := tree.Insert(id, row(id)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	if err := tree.Delete(13); err != nil {
		t.Fatalf("Delete(13): %v", err)
	}

	var got []uint32
	tree.SelectAll(func(key uint32, r storage.Row) { got = append(got, key) })
	want := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReopenPreservesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	pager1, err := storage.OpenPager(path)
	if err != nil {
		t.Fatalf("OpenPager: %v", err)
	}
	tree1 := storage.OpenBTree(pager1)
	for id := uint32(1); id <= 30; id++ {
		if err := tree1.Insert(id, row(id)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	if err := pager1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	pager2, err := storage.OpenPager(path)
	if err != nil {
		t.Fatalf("reopen OpenPager: %v", err)
	}
	defer pager2.Close()
	tree2 := storage.OpenBTree(pager2)

	var got []uint32
	tree2.SelectAll(func(key uint32, r storage.Row) { got = append(got, key) })
	if len(got) != 30 {
		t.Fatalf("got %d rows after reopen, want 30", len(got))
	}
	for i, id := range got {
		if id != uint32(i+1) {
			t.Fatalf("row %d out of order after reopen: %v", i, got)
		}
	}
}

func TestInsertThenDeleteAllLeavesEmptyRoot(t *testing.T) {
	tree, pager, _ := openTree(t)
	defer pager.Close()

	const n = 50
	for id := uint32(1); id <= n; id++ {
		if err := tree.Insert(id, row(id)); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	for id := uint32(1); id <= n; id++ {
		if err := tree.Delete(id); err != nil {
			t.Fatalf("Delete(%d): %v", id, err)
		}
	}

	var got []uint32
	tree.SelectAll(func(key uint32, r storage.Row) { got = append(got, key) })
	if len(got) != 0 {
		t.Fatalf("expected empty tree, got %v", got)
	}
}
