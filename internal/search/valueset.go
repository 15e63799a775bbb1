package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValueSet is a case-insensitive, insertion-ordered set of display strings.
// The first non-empty spelling of a value fixes its display casing.
// A ValueSet is not safe for concurrent use.
type ValueSet struct {
	lower   cases.Caser
	index   map[string]int
	display []string
}

func NewValueSet() *ValueSet {
	return &ValueSet{
		lower: cases.Lower(language.Und),
		index: make(map[string]int),
	}
}

// Add trims s and inserts it unless it is empty or an equal-ignoring-case value exists.
func (s *ValueSet) Add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	key := s.lower.String(v)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.display)
	s.display = append(s.display, v)
	return true
}

// Contains reports whether an equal-ignoring-case value has been added.
func (s *ValueSet) Contains(v string) bool {
	_, ok := s.index[s.lower.String(strings.TrimSpace(v))]
	return ok
}

func (s *ValueSet) Len() int { return len(s.display) }

// Values returns the display strings in first-seen order.
func (s *ValueSet) Values() []string {
	out := make([]string, len(s.display))
	copy(out, s.display)
	return out
}
