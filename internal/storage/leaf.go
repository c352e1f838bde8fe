package storage

// Leaf node layout (spec.md §3): common header, then num_cells, next_leaf,
// then an array of (key, Row) cells ordered strictly ascending by key.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	leafNextLeafOffset = leafNumCellsOffset + leafNumCellsSize
	leafNextLeafSize   = 4
	leafHeaderSize     = leafNextLeafOffset + leafNextLeafSize

	leafKeySize       = 4
	leafValueSize     = RowSize
	leafCellSize      = leafKeySize + leafValueSize
	leafSpaceForCells = PageSize - leafHeaderSize

	// LeafNodeMaxCells is the most cells a leaf can hold.
	LeafNodeMaxCells = leafSpaceForCells / leafCellSize

	// LeafNodeRightSplitCount / LeafNodeLeftSplitCount: how a full leaf's
	// MaxCells+1 cells (the existing ones plus the one being inserted)
	// divide across a split.
	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) / 2
	LeafNodeLeftSplitCount  = (LeafNodeMaxCells + 1) - LeafNodeRightSplitCount
)

func leafNumCells(buf []byte) uint32 {
	return getU32(buf[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func setLeafNumCells(buf []byte, n uint32) {
	putU32(buf[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], n)
}

// leafNextLeaf returns the page number of the leaf to the right of buf in
// key order, or 0 if buf is the rightmost leaf (page 0 is always the root,
// so 0 can never collide with a real next-leaf target).
func leafNextLeaf(buf []byte) uint32 {
	return getU32(buf[leafNextLeafOffset : leafNextLeafOffset+leafNextLeafSize])
}

func setLeafNextLeaf(buf []byte, next uint32) {
	putU32(buf[leafNextLeafOffset:leafNextLeafOffset+leafNextLeafSize], next)
}

func leafCellOffset(cellNum uint32) int {
	return leafHeaderSize + int(cellNum)*leafCellSize
}

func leafKey(buf []byte, cellNum uint32) uint32 {
	off := leafCellOffset(cellNum)
	return getU32(buf[off : off+leafKeySize])
}

func setLeafKey(buf []byte, cellNum uint32, key uint32) {
	off := leafCellOffset(cellNum)
	putU32(buf[off:off+leafKeySize], key)
}

func leafValue(buf []byte, cellNum uint32) []byte {
	off := leafCellOffset(cellNum) + leafKeySize
	return buf[off : off+leafValueSize]
}

func leafCell(buf []byte, cellNum uint32) []byte {
	off := leafCellOffset(cellNum)
	return buf[off : off+leafCellSize]
}

func initializeLeafNode(buf []byte) {
	clear(buf)
	setNodeType(buf, NodeLeaf)
	setNodeRoot(buf, false)
	setLeafNumCells(buf, 0)
	setLeafNextLeaf(buf, 0)
}
