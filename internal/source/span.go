package source

import (
	"fmt"
)

// Span is an opaque location handle: a byte range inside one file.
// Start is inclusive, End is exclusive.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens s so that it also spans other. Spans of different files are ignored.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Narrow returns the sub-span [off, off+n) relative to s, clamped to s.
func (s Span) Narrow(off, n uint32) Span {
	if off > s.Len() {
		off = s.Len()
	}
	if n > s.Len()-off {
		n = s.Len() - off
	}
	return Span{File: s.File, Start: s.Start + off, End: s.Start + off + n}
}
