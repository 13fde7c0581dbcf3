// Package span defines line ranges and line-ownership sets used while
// carving a region out of its enclosing function.
package span

import (
	"fmt"
	"sort"
)

// SourceSpan is an inclusive, 1-based line range.
// OpeningBraces and ClosingBraces are recorded by brace balancing and are
// zero until then.
type SourceSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`

	OpeningBraces int `json:"opening_braces,omitempty"`
	ClosingBraces int `json:"closing_braces,omitempty"`
}

// New creates a span covering lines start through end.
func New(start, end int) SourceSpan {
	return SourceSpan{Start: start, End: end}
}

// Contains reports whether line falls inside the span.
func (s SourceSpan) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}

// Within reports whether s lies entirely inside other.
func (s SourceSpan) Within(other SourceSpan) bool {
	return s.Start >= other.Start && s.End <= other.End
}

// Len returns the number of lines in the span.
func (s SourceSpan) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// Balanced reports whether the recorded brace counts are equal.
func (s SourceSpan) Balanced() bool {
	return s.OpeningBraces == s.ClosingBraces
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// LineSet maps line numbers to the text of the lines a set owns.
// Lines are stored without their trailing newline.
type LineSet struct {
	lines map[int]string
}

// NewLineSet creates an empty line set.
func NewLineSet() *LineSet {
	return &LineSet{lines: make(map[int]string)}
}

// Set stores text for line, replacing any previous text.
func (ls *LineSet) Set(line int, text string) {
	ls.lines[line] = text
}

// Get returns the text of line and whether the set owns it.
func (ls *LineSet) Get(line int) (string, bool) {
	text, ok := ls.lines[line]
	return text, ok
}

// Has reports whether the set owns line.
func (ls *LineSet) Has(line int) bool {
	_, ok := ls.lines[line]
	return ok
}

// Len returns the number of owned lines.
func (ls *LineSet) Len() int {
	return len(ls.lines)
}

// MoveTo transfers ownership of line from ls to dst.
// It returns false when ls does not own the line.
func (ls *LineSet) MoveTo(dst *LineSet, line int) bool {
	text, ok := ls.lines[line]
	if !ok {
		return false
	}
	delete(ls.lines, line)
	dst.lines[line] = text
	return true
}

// Numbers returns the owned line numbers in ascending order.
func (ls *LineSet) Numbers() []int {
	nums := make([]int, 0, len(ls.lines))
	for n := range ls.lines {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Texts returns the owned lines in ascending line-number order.
func (ls *LineSet) Texts() []string {
	nums := ls.Numbers()
	texts := make([]string, 0, len(nums))
	for _, n := range nums {
		texts = append(texts, ls.lines[n])
	}
	return texts
}

// Range returns the text of every owned line in [start, end], in order.
// Lines in the range that the set does not own are skipped.
func (ls *LineSet) Range(start, end int) []string {
	var texts []string
	for n := start; n <= end; n++ {
		if text, ok := ls.lines[n]; ok {
			texts = append(texts, text)
		}
	}
	return texts
}
