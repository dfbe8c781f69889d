package domain

import (
	"slices"
	"strings"
)

// ExclusionSet holds the participants left out of a single expense.
type ExclusionSet map[string]struct{}

// NewExclusionSet builds a set from names. Names are trimmed and blanks dropped.
func NewExclusionSet(names ...string) ExclusionSet {
	set := make(ExclusionSet, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// ParseExclusions parses the comma separated form, e.g. "Bob, Carol".
func ParseExclusions(raw string) ExclusionSet {
	return NewExclusionSet(strings.Split(raw, ",")...)
}

// Contains reports whether name is excluded.
func (s ExclusionSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set holding the names of s and other.
func (s ExclusionSet) Union(other ExclusionSet) ExclusionSet {
	out := make(ExclusionSet, len(s)+len(other))
	for name := range s {
		out[name] = struct{}{}
	}
	for name := range other {
		out[name] = struct{}{}
	}
	return out
}

// Names returns the excluded names in ascending order.
func (s ExclusionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String renders the set in its comma separated form.
func (s ExclusionSet) String() string {
	return strings.Join(s.Names(), ", ")
}

// Expense is a single payment made on behalf of the group.
type Expense struct {
	Payer       string
	Amount      float64
	Description string
	Excluded    ExclusionSet
}
