package diag

import "math"

// Bag is the bounded, insertion-ordered store of a run's diagnostics.
// It never reorders or deduplicates its items.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
	// droppedBySev counts dropped diagnostics per severity so the limit
	// never hides an error from HasErrors.
	droppedBySev [SevError + 1]int
}

// NewBag creates a bag holding at most max diagnostics. A non-positive max means
// the largest supported limit.
func NewBag(max int) *Bag {
	if max <= 0 || max > math.MaxUint16 {
		max = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   uint16(max),
	}
}

// Add appends d unless the limit is reached; it reports whether d was stored.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		b.droppedBySev[min(d.Severity, SevError)]++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll appends ds in order, stopping silently at the limit.
func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		b.Add(d)
	}
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// Dropped reports how many diagnostics did not fit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// DroppedCount reports how many diagnostics with exactly severity sev did
// not fit.
func (b *Bag) DroppedCount(sev Severity) int {
	if sev > SevError {
		return 0
	}
	return b.droppedBySev[sev]
}

// HasErrors reports whether any diagnostic has error severity, kept or dropped.
func (b *Bag) HasErrors() bool {
	return b.count(SevError) > 0 || b.droppedBySev[SevError] > 0
}

// HasWarnings reports whether any diagnostic is a warning or worse, kept or
// dropped.
func (b *Bag) HasWarnings() bool {
	return b.count(SevWarning) > 0 || b.droppedBySev[SevWarning] > 0 || b.droppedBySev[SevError] > 0
}

// Count returns the number of diagnostics with exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) count(atLeast Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= atLeast {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the stored diagnostics. The slice aliases the bag; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Pointers returns the stored diagnostics as pointers for the formatters.
func (b *Bag) Pointers() []*Diagnostic {
	out := make([]*Diagnostic, len(b.items))
	for i := range b.items {
		out[i] = &b.items[i]
	}
	return out
}

// Merge appends every diagnostic of other, growing the limit when needed.
// Diagnostics other already dropped stay counted as dropped.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.dropped += other.dropped
	for sev, n := range other.droppedBySev {
		b.droppedBySev[sev] += n
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		b.max = uint16(min(total, math.MaxUint16))
	}
	b.AddAll(other.items)
}
