package storage

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree writes an indented dump of the tree's node structure to w,
// backing the REPL's .btree command.
func (t *BTree) PrintTree(w io.Writer) {
	scope := newPinScope(t.pager)
	defer scope.release()
	t.printNode(w, scope, t.rootPageNum, 0)
}

func (t *BTree) printNode(w io.Writer, scope *PinScope, pageNum uint32, indent int) {
	node := scope.pin(pageNum)
	pad := strings.Repeat("  ", indent)

	if getNodeType(node.Buf) == NodeLeaf {
		n := leafNumCells(node.Buf)
		fmt.Fprintf(w, "%s- leaf (size %d)\n", pad, n)
		for i := uint32(0); i < n; i++ {
			fmt.Fprintf(w, "%s  - %d\n", pad, leafKey(node.Buf, i))
		}
		return
	}

	numKeys := internalNumKeys(node.Buf)
	fmt.Fprintf(w, "%s- internal (size %d)\n", pad, numKeys)
	for i := uint32(0); i < numKeys; i++ {
		t.printNode(w, scope, internalCellChild(node.Buf, i), indent+1)
		fmt.Fprintf(w, "%s- key %d\n", pad, internalKey(node.Buf, i))
	}
	t.printNode(w, scope, internalRightChild(node.Buf), indent+1)
}
