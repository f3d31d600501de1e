package sparc

// resolvePC re-synchronises curICPage/nextIC with the CPU's current PC,
// materializing the covering page on first touch. Needed whenever a
// handler redirects PC outside the page the dispatch loop was already
// walking through.
func (c *CPU) resolvePC() {
	page, idx := c.trans.Lookup(c, c.PC)
	c.curICPage = page
	c.nextIC = idx
}

// Step executes exactly one translation-cache slot (which may be a real
// guest instruction or one of the two page sentinels) and re-syncs the
// dispatch position with wherever the handler left PC.
//
// Grounded on spec.md §4.5's dispatch loop: "repeatedly invoke
// next_ic->f(cpu, next_ic), increment next_ic and n_translated_instrs."
// The increment-in-place fast path (straight-line code, including landing
// on the end-of-page sentinels) is handled without a translation-cache
// lookup; only a handler that redirects PC outside the current page forces
// a fresh Lookup. Every slot also advances the tick event queue by one,
// so a %tick_cmpr write armed via setTickCmpr eventually fires.
func (c *CPU) Step() {
	if c.curICPage == nil {
		c.resolvePC()
	}
	page := c.curICPage
	idx := c.nextIC
	ic := &page.Slots[idx]
	c.NTranslatedInstrs++
	ic.F(c, ic)
	c.Events.Advance(c, 1)

	rel := int64(c.PC) - int64(page.BaseAddr)
	realSpan := int64(ICEntriesPerPage) * 4
	switch {
	case rel >= 0 && rel < realSpan && rel%4 == 0:
		c.nextIC = int(rel / 4)
	case idx == ICEntriesPerPage-1 && (rel == realSpan || rel == realSpan+4):
		// Leaving the last real slot lands on the matching end-of-page sentinel.
		c.nextIC = int(rel / 4)
	default:
		c.curICPage = nil
	}
}

// Run dispatches instructions until the cooperative stop flag is set,
// matching emu/core.Start()'s loop shape: a tight synchronous call
// sequence with a poll point reached after every translated instruction,
// the only place external collaborators may observe or request a stop.
func (c *CPU) Run() {
	for !c.stopPending() {
		c.Step()
	}
}

// RunInstructions runs at most n slots (real instructions and sentinels
// both count against n), stopping early if the stop flag is set. Useful
// for deterministic single- or few-instruction tests.
func (c *CPU) RunInstructions(n int) {
	for i := 0; i < n && !c.stopPending(); i++ {
		c.Step()
	}
}
