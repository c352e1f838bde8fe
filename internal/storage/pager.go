package storage

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Pager owns the database file and a bounded in-memory cache of its pages
// (spec.md §4). At most maxResident pages (MaxNumLoadedPages unless opened
// with OpenPagerWithCache) are resident at once; when
// a cache miss needs a slot and the cache is full, the least recently used
// unpinned page is evicted. A page with any outstanding pin can never be
// evicted, because a caller is mid-read or mid-write on its buffer.
type Pager struct {
	file     *os.File
	fileLen  int64
	numPages uint32

	freeList *freeList

	maxResident int // resident-set cap; config.CacheSize overrides MaxNumLoadedPages

	resident []*Page // pages currently loaded, most-recently-used last
	pinCount map[uint32]int
}

// OpenPager opens or creates the database file at path with the default
// resident-page cap, and loads its header (free-page stack and page count).
func OpenPager(path string) (*Pager, error) {
	return OpenPagerWithCache(path, MaxNumLoadedPages)
}

// OpenPagerWithCache is OpenPager with an explicit resident-set cap, letting
// config.CacheSize set how many pages the cache holds before evicting. No
// floor is applied here; engine.Open floors the value at MaxNumLoadedPages.
func OpenPagerWithCache(path string, maxResident int) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, wrap(err, "open database file")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, wrap(err, "stat database file")
	}

	p := &Pager{
		file:        f,
		fileLen:     info.Size(),
		pinCount:    make(map[uint32]int),
		maxResident: maxResident,
	}

	if info.Size() == 0 {
		p.freeList = &freeList{}
		if err := p.writeHeader(); err != nil {
			f.Close()
			return nil, err
		}
		p.numPages = 0
		return p, nil
	}

	if (info.Size()-FileHeaderSize)%PageSize != 0 {
		f.Close()
		return nil, errors.New("database file is not a whole number of pages")
	}

	header := make([]byte, FileHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		f.Close()
		return nil, wrap(err, "read database header")
	}
	p.freeList = decodeFreeList(header)
	p.numPages = uint32((info.Size() - FileHeaderSize) / PageSize)
	return p, nil
}

func (p *Pager) writeHeader() error {
	buf := make([]byte, FileHeaderSize)
	p.freeList.encode(buf)
	if _, err := p.file.WriteAt(buf, 0); err != nil {
		return wrap(err, "write database header")
	}
	return nil
}

// NumPages reports how many pages the file currently holds.
func (p *Pager) NumPages() uint32 { return p.numPages }

func (p *Pager) pageFileOffset(num uint32) int64 {
	return int64(FileHeaderSize) + int64(num)*PageSize
}

// getPage returns the resident buffer for num, loading it from disk (and
// evicting another page if necessary) on a cache miss.
func (p *Pager) getPage(num uint32) *Page {
	if num >= TableMaxPages {
		fatalf("page number out of bounds", nil)
	}
	for _, pg := range p.resident {
		if pg.Num == num {
			p.touch(num)
			return pg
		}
	}

	page := newPage(num)
	if num < p.numPages {
		off := p.pageFileOffset(num)
		if _, err := p.file.ReadAt(page.Buf, off); err != nil && err != io.EOF {
			fatalf("read page from disk", err)
		}
	}

	if num >= p.numPages {
		p.numPages = num + 1
	}

	p.admit(page)
	return page
}

// touch moves num to the back of the resident slice, marking it most
// recently used.
func (p *Pager) touch(num uint32) {
	for i, pg := range p.resident {
		if pg.Num == num {
			p.resident = append(p.resident[:i], p.resident[i+1:]...)
			p.resident = append(p.resident, &Page{Num: num, Buf: pg.Buf})
			return
		}
	}
}

// admit inserts a freshly loaded page into the resident set, evicting the
// least recently used unpinned page first if the cache is already full.
func (p *Pager) admit(page *Page) {
	if len(p.resident) >= p.maxResident {
		p.evictOne()
	}
	p.resident = append(p.resident, page)
}

func (p *Pager) evictOne() {
	for i, pg := range p.resident {
		if p.pinCount[pg.Num] > 0 {
			continue
		}
		if err := p.flushPage(pg); err != nil {
			fatalf("flush page during eviction", err)
		}
		p.resident = append(p.resident[:i], p.resident[i+1:]...)
		return
	}
	fatalf("cannot evict: every resident page is pinned", nil)
}

func (p *Pager) flushPage(page *Page) error {
	off := p.pageFileOffset(page.Num)
	if _, err := p.file.WriteAt(page.Buf, off); err != nil {
		return wrap(err, "write page to disk")
	}
	return nil
}

func (p *Pager) pin(num uint32) { p.pinCount[num]++ }

func (p *Pager) unpin(num uint32) {
	if p.pinCount[num] > 0 {
		p.pinCount[num]--
	}
	if p.pinCount[num] == 0 {
		delete(p.pinCount, num)
	}
}

// getUnusedPageNum returns a page number not currently holding live data:
// a reclaimed page from the free-page stack if one is available, otherwise
// a fresh page at the end of the file.
func (p *Pager) getUnusedPageNum() uint32 {
	if page, ok := p.freeList.pop(); ok {
		return page
	}
	return p.numPages
}

func (p *Pager) freePage(num uint32) {
	if !p.freeList.push(num) {
		// Free-page stack is full: the page is simply never reclaimed.
		// This only wastes disk space, so it is not fatal.
		return
	}
}

// Flush writes the header and every resident page back to disk.
func (p *Pager) Flush() error {
	if err := p.writeHeader(); err != nil {
		return err
	}
	for _, pg := range p.resident {
		if err := p.flushPage(pg); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the underlying file.
func (p *Pager) Close() error {
	if err := p.Flush(); err != nil {
		p.file.Close()
		return err
	}
	return wrap(p.file.Close(), "close database file")
}
