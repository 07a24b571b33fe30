package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_OverridesAndExclusions(t *testing.T) {
	t.Parallel()

	def := RuleSet{"r1", "r2", "r3"}
	overrides := map[string]RuleSet{"L2": {"r1"}}

	got := Resolve([]string{"L1", "L2", "L3"}, def, overrides, []string{"L3"})

	want := []Resolved{
		{Location: "L1", Rules: RuleSet{"r1", "r2", "r3"}},
		{Location: "L2", Rules: RuleSet{"r1"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_DefaultFallbackIsExact(t *testing.T) {
	t.Parallel()

	def := RuleSet{"line-too-long", "invalid-name"}
	got := Resolve([]string{"a/", "b/", "c/"}, def, nil, nil)

	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, def, r.Rules, "location %s", r.Location)
	}
}

func TestResolve_OverrideIsNotAUnion(t *testing.T) {
	t.Parallel()

	def := RuleSet{"a", "b"}
	overrides := map[string]RuleSet{"x/": {"c"}}

	got := Resolve([]string{"x/"}, def, overrides, nil)
	require.Len(t, got, 1)
	assert.Equal(t, RuleSet{"c"}, got[0].Rules)
}

func TestResolve_PreservesOrderForAnySubset(t *testing.T) {
	t.Parallel()

	locations := []string{"setup.py", "pkg/", "tests/", "utils/", "docs/"}
	cases := []struct {
		name       string
		exclusions []string
		want       []string
	}{
		{name: "none excluded", want: locations},
		{name: "middle excluded", exclusions: []string{"tests/"}, want: []string{"setup.py", "pkg/", "utils/", "docs/"}},
		{name: "ends excluded", exclusions: []string{"docs/", "setup.py"}, want: []string{"pkg/", "tests/", "utils/"}},
		{name: "all excluded", exclusions: locations, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(locations, RuleSet{"r"}, nil, tc.exclusions)
			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Location)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestResolve_ReturnsCopies(t *testing.T) {
	t.Parallel()

	def := RuleSet{"a", "b"}
	got := Resolve([]string{"x"}, def, nil, nil)
	got[0].Rules[0] = "mutated"

	assert.Equal(t, RuleSet{"a", "b"}, def)
}

func TestStyle_Args(t *testing.T) {
	t.Parallel()

	style := Style{
		MaxLineLength: 240,
		NamingPattern: "^[_a-z][_a-z0-9]?$",
		Plugins:       []string{"pylint.extensions.docparams"},
	}
	args := style.Args(Resolved{Location: "opensearchpy/", Rules: RuleSet{"line-too-long", "invalid-name"}})

	assert.Equal(t, []string{
		"--disable=all",
		"--max-line-length=240",
		"--good-names-rgxs=^[_a-z][_a-z0-9]?$",
		"--load-plugins",
		"pylint.extensions.docparams",
		"--enable=line-too-long,invalid-name",
		"opensearchpy/",
	}, args)
}

func TestStyle_Invocations(t *testing.T) {
	t.Parallel()

	style := Style{MaxLineLength: 100, NamingPattern: ".*"}
	resolved := Resolve([]string{"a/", "b/"}, RuleSet{"x", "y"}, map[string]RuleSet{"b/": {"y"}}, nil)
	command := []string{"pylint"}

	got := style.Invocations(command, resolved)

	want := [][]string{
		{"pylint", "--disable=all", "--max-line-length=100", "--good-names-rgxs=.*", "--enable=x,y", "a/"},
		{"pylint", "--disable=all", "--max-line-length=100", "--good-names-rgxs=.*", "--enable=y", "b/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Invocations() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"pylint"}, command, "command prefix must not be modified")
}
