package nfs

import (
	"strings"

	"flashcat.cloud/nfsmon/pkg/set"
)

const (
	// WildcardMountpoint is the entry applied to mountpoints without an
	// entry of their own.
	WildcardMountpoint = "all"

	// DefaultMinAge is the min_age of the wildcard entry when none is
	// configured. Mounts younger than an hour are not reported.
	DefaultMinAge = 3600
)

type OpSelectorKind int

const (
	OpsNone OpSelectorKind = iota
	OpsAll
	OpsSubset
)

// OpSelector decides which per-op statistics lines of a mount are
// reported.
type OpSelector struct {
	Kind  OpSelectorKind
	Names set.Set[string]
}

func (s OpSelector) Match(name string) bool {
	switch s.Kind {
	case OpsAll:
		return true
	case OpsSubset:
		return s.Names.Has(name)
	}
	return false
}

func isOpSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ';'
}

// ParseOpSelector reads a perop_statistics value: empty for none, "all",
// or a list of operation names separated by blanks, commas or semicolons.
func ParseOpSelector(s string) OpSelector {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return OpSelector{Kind: OpsNone}
	case "all":
		return OpSelector{Kind: OpsAll}
	}

	names := set.New(strings.FieldsFunc(s, isOpSeparator)...)
	if len(names) == 0 {
		return OpSelector{Kind: OpsNone}
	}
	return OpSelector{Kind: OpsSubset, Names: names}
}

type FilterPolicy struct {
	MinAge uint64
	Show   bool
	PerOp  OpSelector
}

// Suppressed reports whether a mount of the given age is left out.
func (p FilterPolicy) Suppressed(age uint64) bool {
	if !p.Show {
		return true
	}
	return p.MinAge != 0 && age < p.MinAge
}

// MountpointConfig is one [[mountpoints]] block of the input config.
type MountpointConfig struct {
	Mountpoint      string `toml:"mountpoint"`
	MinAge          int64  `toml:"min_age"`
	PerOpStatistics string `toml:"perop_statistics"`
	Show            *bool  `toml:"show"`
}

// FilterConfig maps mountpoints to their policy. It is never modified
// after NewFilterConfig returns; a reload builds a new one.
type FilterConfig struct {
	policies map[string]FilterPolicy
}

func NewFilterConfig(entries []MountpointConfig) (*FilterConfig, error) {
	fc := &FilterConfig{policies: make(map[string]FilterPolicy, len(entries)+1)}

	for _, e := range entries {
		mp := strings.TrimSpace(e.Mountpoint)
		if mp == "" {
			return nil, &ConfigError{Field: "mountpoint", Reason: "must not be empty"}
		}

		if _, has := fc.policies[mp]; has {
			return nil, &ConfigError{Mountpoint: mp, Field: "mountpoint", Reason: "configured more than once"}
		}

		if e.MinAge < 0 {
			return nil, &ConfigError{Mountpoint: mp, Field: "min_age", Reason: "must not be negative"}
		}

		show := true
		if e.Show != nil {
			show = *e.Show
		}

		fc.policies[mp] = FilterPolicy{
			MinAge: uint64(e.MinAge),
			Show:   show,
			PerOp:  ParseOpSelector(e.PerOpStatistics),
		}
	}

	if _, has := fc.policies[WildcardMountpoint]; !has {
		fc.policies[WildcardMountpoint] = FilterPolicy{
			MinAge: DefaultMinAge,
			Show:   true,
			PerOp:  OpSelector{Kind: OpsNone},
		}
	}

	return fc, nil
}

// Resolve returns the policy of mountpoint, falling back to the wildcard.
func (fc *FilterConfig) Resolve(mountpoint string) FilterPolicy {
	if p, has := fc.policies[mountpoint]; has {
		return p
	}
	return fc.policies[WildcardMountpoint]
}

func (fc *FilterConfig) Len() int {
	return len(fc.policies)
}
