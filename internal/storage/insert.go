package storage

// Insert adds row under key, returning ErrDuplicateKey if it is already
// present.
func (t *BTree) Insert(key uint32, row *Row) error {
	scope := newPinScope(t.pager)
	defer scope.release()

	cursor := t.find(scope, key)
	leaf := scope.pin(cursor.PageNum)
	if cursor.CellNum < leafNumCells(leaf.Buf) && leafKey(leaf.Buf, cursor.CellNum) == key {
		return ErrDuplicateKey
	}
	t.leafInsert(scope, cursor.PageNum, cursor.CellNum, key, row)
	return nil
}

// leafInsert places (key, row) at cellNum in the leaf at pageNum, splitting
// the leaf first if it is already full.
func (t *BTree) leafInsert(scope *PinScope, pageNum uint32, cellNum uint32, key uint32, row *Row) {
	leaf := scope.pin(pageNum)
	if leafNumCells(leaf.Buf) >= LeafNodeMaxCells {
		t.leafSplitAndInsert(scope, pageNum, cellNum, key, row)
		return
	}

	numCells := leafNumCells(leaf.Buf)
	for i := numCells; i > cellNum; i-- {
		copy(leafCell(leaf.Buf, i), leafCell(leaf.Buf, i-1))
	}
	setLeafNumCells(leaf.Buf, numCells+1)
	setLeafKey(leaf.Buf, cellNum, key)
	serializeRow(row, leafValue(leaf.Buf, cellNum))
}

// leafSplitAndInsert splits a full leaf into two, distributing the
// existing LeafNodeMaxCells cells plus the new one across both, then
// inserts the resulting split into the parent (creating a new root if the
// leaf being split had none).
func (t *BTree) leafSplitAndInsert(scope *PinScope, oldPageNum uint32, cellNum uint32, key uint32, row *Row) {
	oldPage := scope.pin(oldPageNum)
	oldMax := nodeMaxKey(t.pager, scope, oldPageNum)

	newPageNum := t.pager.getUnusedPageNum()
	newPage := scope.pin(newPageNum)
	initializeLeafNode(newPage.Buf)
	setLeafNextLeaf(newPage.Buf, leafNextLeaf(oldPage.Buf))
	setLeafNextLeaf(oldPage.Buf, newPageNum)
	setNodeParent(newPage.Buf, nodeParent(oldPage.Buf))

	// Walk the combined LeafNodeMaxCells+1 logical cells from the end,
	// writing each into whichever physical node it belongs in.
	buf := make([]byte, leafCellSize)
	for i := int32(LeafNodeMaxCells); i >= 0; i-- {
		var dest *Page
		idx := uint32(i)
		if idx >= LeafNodeLeftSplitCount {
			dest = newPage
			idx -= LeafNodeLeftSplitCount
		} else {
			dest = oldPage
		}

		if uint32(i) == cellNum {
			setLeafKey(dest.Buf, idx, key)
			serializeRow(row, leafValue(dest.Buf, idx))
		} else if uint32(i) > cellNum {
			copy(buf, leafCell(oldPage.Buf, uint32(i)-1))
			copy(leafCell(dest.Buf, idx), buf)
		} else {
			copy(buf, leafCell(oldPage.Buf, uint32(i)))
			copy(leafCell(dest.Buf, idx), buf)
		}
	}

	setLeafNumCells(oldPage.Buf, LeafNodeLeftSplitCount)
	setLeafNumCells(newPage.Buf, LeafNodeRightSplitCount)

	if isNodeRoot(oldPage.Buf) {
		t.createNewRoot(scope, oldPageNum, newPageNum)
		return
	}

	parentPageNum := nodeParent(oldPage.Buf)
	parent := scope.pin(parentPageNum)
	newMax := nodeMaxKey(t.pager, scope, oldPageNum)
	updateInternalNodeKey(parent.Buf, oldMax, newMax)
	t.internalNodeInsert(scope, parentPageNum, newPageNum)
}

// createNewRoot turns page 0 into a fresh internal node with leftChild and
// rightChild as its two children. leftChildPageNum is always the old root
// (page 0, which is about to be overwritten), so its contents are copied
// to a freshly allocated page first and that page becomes the real left
// child; page 0's identity as the root never changes, so every other
// node's stored parent pointer to the root stays valid.
func (t *BTree) createNewRoot(scope *PinScope, leftChildPageNum, rightChildPageNum uint32) {
	root := scope.pin(t.rootPageNum)

	leftPageNum := t.pager.getUnusedPageNum()
	left := scope.pin(leftPageNum)
	copy(left.Buf, root.Buf)
	setNodeRoot(left.Buf, false)

	initializeInternalNode(root.Buf)
	setNodeRoot(root.Buf, true)
	setInternalNumKeys(root.Buf, 1)
	setInternalCellChild(root.Buf, 0, leftPageNum)
	leftMax := nodeMaxKey(t.pager, scope, leftPageNum)
	setInternalKey(root.Buf, 0, leftMax)
	setInternalRightChild(root.Buf, rightChildPageNum)

	setNodeParent(left.Buf, t.rootPageNum)
	right := scope.pin(rightChildPageNum)
	setNodeParent(right.Buf, t.rootPageNum)
}

// updateInternalNodeKey finds the cell whose separator equals oldKey and
// replaces it with newKey, used after a split shifts a subtree's max key.
func updateInternalNodeKey(buf []byte, oldKey, newKey uint32) {
	idx := internalNodeFindChild(buf, oldKey)
	setInternalKey(buf, idx, newKey)
}

// internalNodeInsert adds a new child to the internal node at
// parentPageNum at the position given by its subtree's max key (as the
// new right_child if that key exceeds the current right_child's max),
// splitting the node first if already full.
func (t *BTree) internalNodeInsert(scope *PinScope, parentPageNum uint32, childPageNum uint32) {
	parent := scope.pin(parentPageNum)
	child := scope.pin(childPageNum)
	childMaxKey := nodeMaxKey(t.pager, scope, childPageNum)
	idx := internalNodeFindChild(parent.Buf, childMaxKey)

	origNumKeys := internalNumKeys(parent.Buf)
	if origNumKeys >= InternalNodeMaxKeys {
		t.internalNodeSplitAndInsert(scope, parentPageNum, childPageNum)
		return
	}

	rightChildPageNum := internalRightChild(parent.Buf)
	if rightChildPageNum == InvalidPageNum {
		// Empty parent: there is nothing yet to compare child against.
		setInternalRightChild(parent.Buf, childPageNum)
		setNodeParent(child.Buf, parentPageNum)
		return
	}
	scope.pin(rightChildPageNum)
	rightChildMaxKey := nodeMaxKey(t.pager, scope, rightChildPageNum)
	if childMaxKey > rightChildMaxKey {
		setInternalCellChild(parent.Buf, origNumKeys, rightChildPageNum)
		setInternalKey(parent.Buf, origNumKeys, rightChildMaxKey)
		setInternalRightChild(parent.Buf, childPageNum)
	} else {
		for i := origNumKeys; i > idx; i-- {
			setInternalCellChild(parent.Buf, i, internalCellChild(parent.Buf, i-1))
			setInternalKey(parent.Buf, i, internalKey(parent.Buf, i-1))
		}
		setInternalCellChild(parent.Buf, idx, childPageNum)
		setInternalKey(parent.Buf, idx, childMaxKey)
	}
	setInternalNumKeys(parent.Buf, origNumKeys+1)
	setNodeParent(child.Buf, parentPageNum)
}

// internalNodeSplitAndInsert splits a full internal node in two and
// inserts the split into the grandparent, recursing upward (or creating a
// new root) as far as necessary.
func (t *BTree) internalNodeSplitAndInsert(scope *PinScope, oldPageNum uint32, childPageNum uint32) {
	oldPage := scope.pin(oldPageNum)
	oldMax := nodeMaxKey(t.pager, scope, oldPageNum)

	wasRoot := isNodeRoot(oldPage.Buf)
	splittingRoot := wasRoot

	var newPageNum uint32
	var oldPageToUse uint32 = oldPageNum
	if splittingRoot {
		t.createNewRootForInternalSplit(scope, oldPageNum)
		oldPageToUse = internalCellChild(scope.pin(t.rootPageNum).Buf, 0)
		oldPage = scope.pin(oldPageToUse)
	}

	newPageNum = t.pager.getUnusedPageNum()
	newPage := scope.pin(newPageNum)
	initializeInternalNode(newPage.Buf)
	setNodeParent(newPage.Buf, nodeParent(oldPage.Buf))

	childMaxKey := nodeMaxKey(t.pager, scope, childPageNum)

	// Collect every one of the old node's children, including its
	// right_child, plus the incoming child, sorted ascending by subtree
	// max key. Whichever entry ends up last overall becomes the new
	// node's right_child, so an incoming child that is the new overall
	// maximum is promoted correctly instead of being stuck in a cell to
	// the left of the real (now stale) right_child.
	type entry struct {
		child uint32
		key   uint32
	}
	oldRightChildPageNum := internalRightChild(oldPage.Buf)
	oldRightChildKey := nodeMaxKey(t.pager, scope, oldRightChildPageNum)

	total := internalNumKeys(oldPage.Buf) + 2
	entries := make([]entry, 0, total)
	for i := uint32(0); i < internalNumKeys(oldPage.Buf); i++ {
		entries = append(entries, entry{internalCellChild(oldPage.Buf, i), internalKey(oldPage.Buf, i)})
	}
	entries = append(entries, entry{oldRightChildPageNum, oldRightChildKey})

	insertAt := len(entries)
	for i, e := range entries {
		if childMaxKey < e.key {
			insertAt = i
			break
		}
	}
	entries = append(entries, entry{})
	copy(entries[insertAt+1:], entries[insertAt:])
	entries[insertAt] = entry{childPageNum, childMaxKey}

	leftCount := (len(entries) + 1) / 2
	for i, e := range entries {
		if i < leftCount {
			setInternalCellChild(oldPage.Buf, uint32(i), e.child)
			setInternalKey(oldPage.Buf, uint32(i), e.key)
		}
	}
	setInternalNumKeys(oldPage.Buf, uint32(leftCount-1))
	setInternalRightChild(oldPage.Buf, entries[leftCount-1].child)
	promotedKey := entries[leftCount-1].key

	newIdx := uint32(0)
	for i := leftCount; i < len(entries)-1; i++ {
		setInternalCellChild(newPage.Buf, newIdx, entries[i].child)
		setInternalKey(newPage.Buf, newIdx, entries[i].key)
		newIdx++
	}
	setInternalNumKeys(newPage.Buf, newIdx)
	setInternalRightChild(newPage.Buf, entries[len(entries)-1].child)

	t.reparentChildren(scope, oldPageToUse)
	t.reparentChildren(scope, newPageNum)

	if wasRoot {
		root := scope.pin(t.rootPageNum)
		setInternalKey(root.Buf, 0, promotedKey)
		setInternalCellChild(root.Buf, 0, oldPageToUse)
		setInternalRightChild(root.Buf, newPageNum)
		setNodeParent(oldPage.Buf, t.rootPageNum)
		setNodeParent(newPage.Buf, t.rootPageNum)
		return
	}

	parentPageNum := nodeParent(oldPage.Buf)
	parent := scope.pin(parentPageNum)
	newMax := nodeMaxKey(t.pager, scope, oldPageToUse)
	updateInternalNodeKey(parent.Buf, oldMax, newMax)
	t.internalNodeInsert(scope, parentPageNum, newPageNum)
}

// createNewRootForInternalSplit relocates the current root's contents to a
// fresh page so page 0 can be reinitialized as the new two-child root,
// mirroring createNewRoot's page-0-stays-root invariant for the internal
// case.
func (t *BTree) createNewRootForInternalSplit(scope *PinScope, oldRootPageNum uint32) {
	root := scope.pin(t.rootPageNum)
	relocated := t.pager.getUnusedPageNum()
	dest := scope.pin(relocated)
	copy(dest.Buf, root.Buf)
	setNodeRoot(dest.Buf, false)
	t.reparentChildren(scope, relocated)

	initializeInternalNode(root.Buf)
	setNodeRoot(root.Buf, true)
	setInternalNumKeys(root.Buf, 1)
	setInternalCellChild(root.Buf, 0, relocated)
	setNodeParent(dest.Buf, t.rootPageNum)
}

// reparentChildren fixes the parent pointer of every direct child of the
// internal node at pageNum to point at pageNum, used after a node's
// contents have been moved to a different physical page.
func (t *BTree) reparentChildren(scope *PinScope, pageNum uint32) {
	node := scope.pin(pageNum)
	if getNodeType(node.Buf) != NodeInternal {
		return
	}
	numKeys := internalNumKeys(node.Buf)
	for i := uint32(0); i < numKeys; i++ {
		childNum := internalCellChild(node.Buf, i)
		child := scope.pin(childNum)
		setNodeParent(child.Buf, pageNum)
		scope.unpinOne(childNum)
	}
	rightChildNum := internalRightChild(node.Buf)
	rightChild := scope.pin(rightChildNum)
	setNodeParent(rightChild.Buf, pageNum)
	scope.unpinOne(rightChildNum)
}
