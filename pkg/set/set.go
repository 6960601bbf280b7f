package set

import "sort"

type (
	Empty             struct{}
	Set[R comparable] map[R]Empty
)

func New[R comparable](elems ...R) Set[R] {
	s := make(Set[R], len(elems))
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (s Set[R]) Add(elem R) {
	s[elem] = Empty{}
}

func (s Set[R]) Has(elem R) bool {
	_, ok := s[elem]
	return ok
}

// Sorted returns the members of a string set in lexical order.
func Sorted(s Set[string]) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
