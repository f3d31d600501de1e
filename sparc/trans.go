package sparc

// Page is the materialized translation-cache entry for one guest physical
// page: a fixed-size array of pre-decoded instruction slots plus the two
// end-of-page sentinels appended after the last real slot.
type Page struct {
	Slots    [ICEntriesPerPage + 2]InstrCall
	BaseAddr uint64
}

// TranslationCache indexes guest physical pages by their page-aligned
// address. spec.md describes a 32-bit single-level (top 20 bits) or 64-bit
// three-level (L1/L2/L3) page table; both are address-partitioning schemes
// over the same key space, so this implementation partitions the same way
// conceptually but stores materialized pages in a map keyed by the
// page-aligned address rather than a dense nested array — idiomatic Go
// avoids pre-allocating a terabyte-scale array for addresses that are
// mostly never touched, while preserving the lookup/miss/invalidate
// semantics spec.md names.
type TranslationCache struct {
	is32Bit bool
	pages   map[uint64]*Page
}

func NewTranslationCache(is32Bit bool) *TranslationCache {
	return &TranslationCache{is32Bit: is32Bit, pages: make(map[uint64]*Page)}
}

func (t *TranslationCache) pageKey(addr uint64) uint64 {
	key := addr &^ uint64(ICEntriesPerPage*4-1)
	if t.is32Bit {
		key &= 0xffffffff
	}
	return key
}

func (t *TranslationCache) slotIndex(addr uint64) int {
	return int((addr & uint64(ICEntriesPerPage*4-1)) >> InstrAlignmentShift)
}

// Lookup returns the page covering addr and the true guest-instruction
// slot index within it, materializing the page (decode-on-first-touch) if
// this is the first reference.
func (t *TranslationCache) Lookup(cpu *CPU, addr uint64) (*Page, int) {
	key := t.pageKey(addr)
	p, ok := t.pages[key]
	if !ok {
		p = t.materialize(key)
		t.pages[key] = p
	}
	return p, t.slotIndex(addr)
}

// materialize allocates a page descriptor with every real slot initialized
// to toBeTranslated and the two sentinels appended, per spec.md §4.5.
func (t *TranslationCache) materialize(baseAddr uint64) *Page {
	p := &Page{BaseAddr: baseAddr}
	for i := 0; i < ICEntriesPerPage; i++ {
		p.Slots[i] = InstrCall{F: toBeTranslated}
	}
	p.Slots[ICEntriesPerPage] = InstrCall{F: endOfPage}
	p.Slots[ICEntriesPerPage+1] = InstrCall{F: endOfPage2}
	return p
}

// Invalidate drops the page descriptor covering addr, e.g. after a store to
// instruction memory. The store handler that calls it also clears the CPU's
// current page when that is the dropped one, so the next Step re-resolves
// through Lookup instead of dispatching from the stale page.
func (t *TranslationCache) Invalidate(addr uint64) {
	delete(t.pages, t.pageKey(addr))
}
