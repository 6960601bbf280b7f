package filter

import (
	"strings"

	"github.com/gobwas/glob"
)

type Filter interface {
	Match(string) bool
}

// Compile takes a list of string filters and returns a Filter interface
// for matching a given string against the filter list. The filter list
// supports glob matching too, ie:
//
//	f, _ := Compile([]string{"nfs_*", "nfs_uptime"})
//	f.Match("nfs_nfsclient_bytes_readpages") // true
//	f.Match("cpu_usage")                      // false
func Compile(filters []string) (Filter, error) {
	switch len(filters) {
	case 0:
		return nil, nil
	case 1:
		if hasMeta(filters[0]) {
			return glob.Compile(filters[0])
		}
		return &filterSingle{s: filters[0]}, nil
	}

	noGlob := true
	for _, f := range filters {
		if hasMeta(f) {
			noGlob = false
			break
		}
	}

	if noGlob {
		out := filterNoGlob{m: make(map[string]struct{}, len(filters))}
		for _, f := range filters {
			out.m[f] = struct{}{}
		}
		return &out, nil
	}

	return glob.Compile("{" + strings.Join(filters, ",") + "}")
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

type filterSingle struct {
	s string
}

func (f *filterSingle) Match(s string) bool {
	return f.s == s
}

type filterNoGlob struct {
	m map[string]struct{}
}

func (f *filterNoGlob) Match(s string) bool {
	_, ok := f.m[s]
	return ok
}
