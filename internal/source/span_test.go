package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 2, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 2, End: 10}},
		{"other file ignored", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSpanNarrow(t *testing.T) {
	base := Span{File: 3, Start: 10, End: 20}

	tests := []struct {
		name    string
		off, n  uint32
		want    Span
	}{
		{"inside", 2, 3, Span{File: 3, Start: 12, End: 15}},
		{"length clamped", 8, 5, Span{File: 3, Start: 18, End: 20}},
		{"offset clamped", 30, 1, Span{File: 3, Start: 20, End: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Narrow(tt.off, tt.n); got != tt.want {
				t.Fatalf("Narrow(%d,%d) = %s, want %s", tt.off, tt.n, got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	sp := Span{File: 1, Start: 4, End: 4}
	if !sp.Empty() || sp.Len() != 0 {
		t.Fatalf("expected empty span, got %s", sp)
	}
	if sp.String() != "1:4-4" {
		t.Fatalf("String = %q", sp.String())
	}
}
