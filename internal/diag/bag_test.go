package diag

import (
	"testing"

	"quantgen/internal/source"
)

func TestBagKeepsInsertionOrderAndDuplicates(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 0, Start: 4, End: 8}
	b.Add(NewError(RefCyclicDependency, sp, "a"))
	b.Add(NewWarning(UntRedundantPermutations, source.Span{}, "b"))
	b.Add(NewError(RefCyclicDependency, sp, "a"))

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Message != "a" || items[1].Message != "b" || items[2].Message != "a" {
		t.Fatalf("order changed: %+v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected errors and warnings")
	}
	if b.Count(SevWarning) != 1 {
		t.Fatalf("warnings = %d", b.Count(SevWarning))
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(NewError(LstEmptyList, source.Span{}, "x")) {
		t.Fatal("first add must succeed")
	}
	if b.Add(NewError(LstEmptyList, source.Span{}, "y")) {
		t.Fatal("second add must be rejected")
	}
	if b.Dropped() != 1 {
		t.Fatalf("dropped = %d", b.Dropped())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LstEmptyList, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(LstNullItem, source.Span{}, "b"))
	other.Add(NewError(LstNullItem, source.Span{}, "c"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("len = %d, want 3", a.Len())
	}
}

func TestOfDropsNil(t *testing.T) {
	d := Errorf(LstNullItem, source.Span{}, "item %d", 2)
	got := Of(nil, d, nil)
	if len(got) != 1 || got[0].Message != "item 2" {
		t.Fatalf("Of = %+v", got)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	var r SliceReporter
	b := ReportError(&r, IODeclSyntax, source.Span{}, "bad").WithNote(source.Span{Start: 1}, "here")
	b.Emit()
	b.Emit()
	if len(r.Items) != 1 || len(r.Items[0].Notes) != 1 {
		t.Fatalf("items = %+v", r.Items)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LstEmptyList:        "LST1001",
		UntInvalidName:      "UNT2001",
		RefCyclicDependency: "REF3004",
		IOLoadFileError:     "IO4001",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if UnknownCode.ID() != "E0000" {
		t.Fatal("unknown code id")
	}
}

func TestBagLimitKeepsDroppedErrorsVisible(t *testing.T) {
	b := NewBag(1)
	b.Add(NewWarning(UntRedundantPermutations, source.Span{}, "w"))
	b.Add(NewError(RefCyclicDependency, source.Span{}, "e"))

	if b.Len() != 1 || b.Dropped() != 1 {
		t.Fatalf("len = %d dropped = %d", b.Len(), b.Dropped())
	}
	if !b.HasErrors() {
		t.Fatal("dropped error must still count")
	}
	if b.DroppedCount(SevError) != 1 || b.DroppedCount(SevWarning) != 0 {
		t.Fatalf("dropped by severity: errors %d warnings %d", b.DroppedCount(SevError), b.DroppedCount(SevWarning))
	}

	merged := NewBag(5)
	merged.Merge(b)
	if !merged.HasErrors() || merged.Dropped() != 1 {
		t.Fatalf("merge lost dropped diagnostics: errors %v dropped %d", merged.HasErrors(), merged.Dropped())
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR", Severity(9): "UNKNOWN"} {
		if got := sev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", sev, got, want)
		}
	}
}
