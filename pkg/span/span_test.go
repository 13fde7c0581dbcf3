package span

import (
	"reflect"
	"testing"
)

func TestSourceSpanContains(t *testing.T) {
	s := New(3, 7)

	tests := []struct {
		line int
		want bool
	}{
		{2, false},
		{3, true},
		{5, true},
		{7, true},
		{8, false},
	}

	for _, tt := range tests {
		if got := s.Contains(tt.line); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSourceSpanWithin(t *testing.T) {
	fn := New(1, 20)

	if !New(1, 20).Within(fn) {
		t.Error("identical span should be within")
	}
	if !New(4, 9).Within(fn) {
		t.Error("inner span should be within")
	}
	if New(0, 9).Within(fn) {
		t.Error("span starting before function should not be within")
	}
	if New(4, 21).Within(fn) {
		t.Error("span ending after function should not be within")
	}
}

func TestSourceSpanLenAndBalanced(t *testing.T) {
	s := New(4, 6)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if New(5, 4).Len() != 0 {
		t.Error("inverted span should have zero length")
	}

	s.OpeningBraces, s.ClosingBraces = 2, 1
	if s.Balanced() {
		t.Error("2 opening / 1 closing should not be balanced")
	}
	s.ClosingBraces = 2
	if !s.Balanced() {
		t.Error("equal counts should be balanced")
	}
}

func TestLineSetMoveTo(t *testing.T) {
	region := NewLineSet()
	rest := NewLineSet()
	region.Set(4, "\tx = 1;")
	rest.Set(5, "}")

	if !rest.MoveTo(region, 5) {
		t.Fatal("MoveTo should succeed for an owned line")
	}
	if rest.Has(5) {
		t.Error("source set still owns moved line")
	}
	if text, ok := region.Get(5); !ok || text != "}" {
		t.Errorf("region.Get(5) = %q, %v", text, ok)
	}
	if rest.MoveTo(region, 5) {
		t.Error("MoveTo should fail for a line the set no longer owns")
	}
}

func TestLineSetOrdering(t *testing.T) {
	ls := NewLineSet()
	ls.Set(9, "c")
	ls.Set(2, "a")
	ls.Set(5, "b")

	if got := ls.Numbers(); !reflect.DeepEqual(got, []int{2, 5, 9}) {
		t.Errorf("Numbers() = %v", got)
	}
	if got := ls.Texts(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Texts() = %v", got)
	}
	if got := ls.Range(3, 9); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Range(3, 9) = %v", got)
	}
	if ls.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ls.Len())
	}
}
