package storage

// Cursor is a logical position within the table: a leaf page and a cell
// index into it. Scans follow the leaf chain via next_leaf; EndOfTable is
// set once the chain is exhausted.
type Cursor struct {
	tree       *BTree
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// tableStart returns a cursor at the first row in key order, i.e. cell 0
// of the leftmost leaf.
func tableStart(t *BTree, scope *PinScope) *Cursor {
	c := t.find(scope, 0)
	page := scope.pin(c.PageNum)
	c.EndOfTable = leafNumCells(page.Buf) == 0
	return c
}

// value returns the raw cell bytes (key+row) the cursor currently points
// at. The caller must hold a pin on PageNum.
func (c *Cursor) value(scope *PinScope) []byte {
	page := scope.pin(c.PageNum)
	return leafValue(page.Buf, c.CellNum)
}

// advance moves the cursor to the next cell, crossing into the next leaf
// (following next_leaf) when the current one is exhausted.
func (c *Cursor) advance(scope *PinScope) {
	page := scope.pin(c.PageNum)
	c.CellNum++
	if c.CellNum >= leafNumCells(page.Buf) {
		next := leafNextLeaf(page.Buf)
		if next == 0 {
			c.EndOfTable = true
			return
		}
		c.PageNum = next
		c.CellNum = 0
	}
}
