package storage

// SelectAll invokes fn for every row in ascending key order.
func (t *BTree) SelectAll(fn func(key uint32, row Row)) {
	scope := newPinScope(t.pager)
	defer scope.release()

	cursor := tableStart(t, scope)
	for !cursor.EndOfTable {
		page := scope.pin(cursor.PageNum)
		key := leafKey(page.Buf, cursor.CellNum)
		row := deserializeRow(leafValue(page.Buf, cursor.CellNum))
		fn(key, row)
		cursor.advance(scope)
	}
}

// Get returns the row stored under key, if any.
func (t *BTree) Get(key uint32) (Row, bool) {
	scope := newPinScope(t.pager)
	defer scope.release()

	cursor := t.find(scope, key)
	leaf := scope.pin(cursor.PageNum)
	if cursor.CellNum >= leafNumCells(leaf.Buf) || leafKey(leaf.Buf, cursor.CellNum) != key {
		return Row{}, false
	}
	return deserializeRow(leafValue(leaf.Buf, cursor.CellNum)), true
}
