package rules

import (
	"slices"
	"strconv"
	"strings"
)

// RuleSet is an ordered list of check names to enable.
type RuleSet []string

// Resolved pairs a source location with the rule set that applies to it.
type Resolved struct {
	Location string
	Rules    RuleSet
}

// Resolve computes the effective rule set for each location. Locations in
// exclusions are dropped; the rest keep their input order and receive their
// override if one exists, else def. An override replaces def entirely.
//
// The returned rule sets are copies, so callers may modify them freely.
func Resolve(locations []string, def RuleSet, overrides map[string]RuleSet, exclusions []string) []Resolved {
	out := make([]Resolved, 0, len(locations))
	for _, loc := range locations {
		if slices.Contains(exclusions, loc) {
			continue
		}
		rules, ok := overrides[loc]
		if !ok {
			rules = def
		}
		out = append(out, Resolved{Location: loc, Rules: slices.Clone(rules)})
	}
	return out
}

// Style holds the per-run parameters shared by every style-checker call.
type Style struct {
	MaxLineLength int
	NamingPattern string
	Plugins       []string
}

// Args encodes a resolved pair as style-checker arguments: a disable-all
// baseline, the shared parameters, the explicit enable list in declared order,
// and finally the location itself.
func (s Style) Args(r Resolved) []string {
	args := []string{
		"--disable=all",
		"--max-line-length=" + strconv.Itoa(s.MaxLineLength),
		"--good-names-rgxs=" + s.NamingPattern,
	}
	if len(s.Plugins) > 0 {
		args = append(args, "--load-plugins", strings.Join(s.Plugins, ","))
	}
	return append(args, "--enable="+strings.Join(r.Rules, ","), r.Location)
}

// Invocations resolves every location and prefixes each argument list with
// the style-checker command.
func (s Style) Invocations(command []string, resolved []Resolved) [][]string {
	out := make([][]string, 0, len(resolved))
	for _, r := range resolved {
		argv := append(slices.Clone(command), s.Args(r)...)
		out = append(out, argv)
	}
	return out
}
