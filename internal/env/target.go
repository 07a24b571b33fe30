package env

import (
	"fmt"
	"strings"
)

// TargetKind classifies an install target.
type TargetKind int

const (
	// KindPackage is a plain package specifier such as "black" or "mypy==1.0".
	KindPackage TargetKind = iota
	// KindProject is a local project reference, optionally with extras.
	KindProject
	// KindRequirements is a requirements file.
	KindRequirements
)

// Target is one entry of an ordered install request.
type Target struct {
	Kind   TargetKind
	Spec   string
	Extras []string
}

// ParseTarget understands the forms "-r FILE", "-rFILE", ".", ".[a,b]",
// "./path[extra]" and plain package specifiers.
func ParseTarget(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Target{}, fmt.Errorf("empty install target")
	}

	if rest, ok := strings.CutPrefix(s, "-r"); ok {
		file := strings.TrimSpace(rest)
		if file == "" {
			return Target{}, fmt.Errorf("install target %q: missing requirements file", raw)
		}
		return Target{Kind: KindRequirements, Spec: file}, nil
	}

	if !strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "/") {
		return Target{Kind: KindPackage, Spec: s}, nil
	}

	path, extras, hasExtras := strings.Cut(s, "[")
	t := Target{Kind: KindProject, Spec: path}
	if !hasExtras {
		return t, nil
	}
	list, ok := strings.CutSuffix(extras, "]")
	if !ok || strings.ContainsAny(list, "[]") {
		return Target{}, fmt.Errorf("install target %q: malformed extras", raw)
	}
	for _, extra := range strings.Split(list, ",") {
		if extra = strings.TrimSpace(extra); extra != "" {
			t.Extras = append(t.Extras, extra)
		}
	}
	return t, nil
}

// ParseTargets parses every entry, failing on the first malformed one.
func ParseTargets(raw []string) ([]Target, error) {
	targets := make([]Target, 0, len(raw))
	for _, r := range raw {
		t, err := ParseTarget(r)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// Args renders the target as pip install arguments.
func (t Target) Args() []string {
	switch t.Kind {
	case KindRequirements:
		return []string{"-r", t.Spec}
	case KindProject:
		if len(t.Extras) == 0 {
			return []string{t.Spec}
		}
		return []string{t.Spec + "[" + strings.Join(t.Extras, ",") + "]"}
	default:
		return []string{t.Spec}
	}
}

func (t Target) String() string {
	return strings.Join(t.Args(), " ")
}
