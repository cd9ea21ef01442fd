package ast

import "testing"

func TestSpanString(t *testing.T) {
	s := NewSpan(3, 7)
	if got := s.String(); got != "3-7" {
		t.Errorf("expected %q, got %q", "3-7", got)
	}
}

func TestMergeSpansTakesOuterBounds(t *testing.T) {
	a := NewSpan(5, 10)
	b := NewSpan(2, 8)
	got := MergeSpans(a, b)
	if got.Start != 2 || got.End != 10 {
		t.Errorf("expected [2,10], got [%d,%d]", got.Start, got.End)
	}
}

func TestMergeSpansNonOverlapping(t *testing.T) {
	a := NewSpan(0, 1)
	b := NewSpan(5, 6)
	got := MergeSpans(a, b)
	if got.Start != 0 || got.End != 6 {
		t.Errorf("expected [0,6], got [%d,%d]", got.Start, got.End)
	}
}

func TestMergeSpansAEnclosesB(t *testing.T) {
	a := NewSpan(0, 10)
	b := NewSpan(3, 4)
	got := MergeSpans(a, b)
	if got.Start != 0 || got.End != 10 {
		t.Errorf("expected a to fully enclose b, got [%d,%d]", got.Start, got.End)
	}
}


