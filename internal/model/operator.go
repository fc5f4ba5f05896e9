package model

import (
	"sort"
	"strings"
)

// VersionDelimiter separates versions within a single report cell.
const VersionDelimiter = ", "

// VersionSet is a set of operator versions.
type VersionSet map[string]struct{}

// Add inserts a version into the set.
func (vs VersionSet) Add(version string) {
	vs[version] = struct{}{}
}

// Sorted returns the versions in lexicographic order.
func (vs VersionSet) Sorted() []string {
	out := make([]string, 0, len(vs))
	for v := range vs {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Join returns the sorted versions joined with VersionDelimiter.
func (vs VersionSet) Join() string {
	return strings.Join(vs.Sorted(), VersionDelimiter)
}

// OperatorSet maps an operator display name to the versions observed for it.
type OperatorSet map[string]VersionSet

// Add records one observation of an operator.
func (s OperatorSet) Add(name, version string) {
	vs, ok := s[name]
	if !ok {
		vs = VersionSet{}
		s[name] = vs
	}
	vs.Add(version)
}

// Merge adds every observation of other into s.
func (s OperatorSet) Merge(other OperatorSet) {
	for name, versions := range other {
		vs, ok := s[name]
		if !ok {
			vs = VersionSet{}
			s[name] = vs
		}
		for v := range versions {
			vs.Add(v)
		}
	}
}

// Names returns the operator names in lexicographic order.
func (s OperatorSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Cell returns the report cell for an operator: its sorted, deduplicated
// versions joined with VersionDelimiter, or "" if the operator is absent.
func (s OperatorSet) Cell(name string) string {
	vs, ok := s[name]
	if !ok {
		return ""
	}
	return vs.Join()
}
