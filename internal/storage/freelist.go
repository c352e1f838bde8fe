package storage

// Free-page stack (spec.md §3): a bounded LIFO of reclaimed page numbers
// persisted at the front of the file, so pages freed by a merge can be
// reused by a later split instead of growing the file forever.
const (
	freeListOffset       = 0
	freeListCountSize    = 4
	freeListEntrySize    = 4
	freeListMaxEntries   = TableMaxPages
	freeListStackOffset  = freeListOffset + freeListCountSize
	freeListStackSize    = freeListMaxEntries * freeListEntrySize

	// FileHeaderSize is the number of bytes reserved ahead of the page
	// array: the free count plus the free stack.
	FileHeaderSize = freeListStackOffset + freeListStackSize
)

type freeList struct {
	count uint32
	pages [freeListMaxEntries]uint32
}

func (f *freeList) push(page uint32) bool {
	if f.count >= freeListMaxEntries {
		return false
	}
	f.pages[f.count] = page
	f.count++
	return true
}

func (f *freeList) pop() (uint32, bool) {
	if f.count == 0 {
		return 0, false
	}
	f.count--
	return f.pages[f.count], true
}

func (f *freeList) encode(dst []byte) {
	putU32(dst[freeListOffset:freeListOffset+freeListCountSize], f.count)
	stack := dst[freeListStackOffset : freeListStackOffset+freeListStackSize]
	for i := 0; i < freeListMaxEntries; i++ {
		putU32(stack[i*freeListEntrySize:(i+1)*freeListEntrySize], f.pages[i])
	}
}

func decodeFreeList(src []byte) *freeList {
	f := &freeList{}
	f.count = getU32(src[freeListOffset : freeListOffset+freeListCountSize])
	stack := src[freeListStackOffset : freeListStackOffset+freeListStackSize]
	for i := 0; i < freeListMaxEntries; i++ {
		f.pages[i] = getU32(stack[i*freeListEntrySize : (i+1)*freeListEntrySize])
	}
	return f
}
