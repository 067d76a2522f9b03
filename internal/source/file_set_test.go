package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("units.yaml", []byte("first"), 0)
	id2 := fs.Add("units.yaml", []byte("second"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("units.yaml")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "first" {
		t.Fatalf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIndex(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.yaml", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatal("FileVirtual flag not set")
	}
}

func TestLoadNormalisesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units.yaml")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a: 1\r\nb: 2\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a: 1\nb: 2\n" {
		t.Fatalf("content = %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF", file.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestResolveAcrossLines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.yaml", []byte("ab\ncd\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Fatalf("Resolve(%d) = %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestOffsetOfRoundTripsResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.yaml", []byte("name: Metre\nalias: Meter\n"))

	off, ok := fs.OffsetOf(id, 2, 8)
	if !ok {
		t.Fatal("OffsetOf failed")
	}
	if off != 19 {
		t.Fatalf("offset = %d, want 19", off)
	}
	start, _ := fs.Resolve(Span{File: id, Start: off, End: off})
	if start != (LineCol{Line: 2, Col: 8}) {
		t.Fatalf("round trip = %+v", start)
	}

	if _, ok := fs.OffsetOf(id, 0, 1); ok {
		t.Fatal("line 0 must be rejected")
	}
	if _, ok := fs.OffsetOf(id, 9, 1); ok {
		t.Fatal("line past end must be rejected")
	}
}

func TestSpanAtClampsToContent(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.yaml", []byte("abc"))

	sp := fs.SpanAt(id, 1, 2, 10)
	if sp.Start != 1 || sp.End != 3 {
		t.Fatalf("SpanAt = %s, want 1..3", sp)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.yaml", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	for i, want := range []string{"first", "second", "third", ""} {
		if got := file.GetLine(uint32(i + 1)); got != want {
			t.Fatalf("GetLine(%d) = %q, want %q", i+1, got, want)
		}
	}
	if got := file.GetLine(0); got != "" {
		t.Fatalf("GetLine(0) = %q", got)
	}
}
