package core_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ddc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(records map[string]core.Record, order ...string) core.Catalog {
	cat := core.NewCatalog()
	for _, dir := range order {
		cat.Put(dir, records[dir])
	}
	return cat
}

func TestSanitize_EveryDeniedChar(t *testing.T) {
	deny := core.DefaultDenyList()
	s := core.NewSanitizer(deny, "README.yaml")

	for _, c := range deny.Chars() {
		t.Run(c, func(t *testing.T) {
			in := catalogOf(map[string]core.Record{
				"value": {"Title": "a" + c + "b"},
				"key":   {"K" + c + "ey": "plain"},
			}, "key", "value")

			out, warnings := s.Sanitize(in)

			rec, _ := out.Get("value")
			assert.NotContains(t, rec["Title"], c)
			assert.True(t, warnings.Has("value/README.yaml"))

			rec, _ = out.Get("key")
			for k := range rec {
				assert.NotContains(t, k, c)
			}
			assert.True(t, warnings.Has("key/README.yaml"))
		})
	}
}

func TestSanitize_CleanRecordUnchanged(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")
	in := catalogOf(map[string]core.Record{
		"docs": {"Title": "Plain & simple [ok]", "Data Manager": "Mike"},
	}, "docs")

	out, warnings := s.Sanitize(in)

	rec, _ := out.Get("docs")
	assert.Equal(t, core.Record{"Title": "Plain & simple [ok]", "Data Manager": "Mike"}, rec)
	assert.Equal(t, 0, warnings.Len())
}

func TestSanitize_Replacements(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")
	in := catalogOf(map[string]core.Record{
		"docs": {"Title": "<script>alert(1);</script>", "Note": "{x}"},
	}, "docs")

	out, _ := s.Sanitize(in)
	rec, _ := out.Get("docs")
	assert.Equal(t, "&lt;script&gt;alert1&lt;/script&gt;", rec["Title"])
	assert.Equal(t, "x", rec["Note"])
}

func TestSanitize_ReplacementIsNotRescanned(t *testing.T) {
	deny := core.DenyList{{'<', "(lt)"}, {'(', ""}}
	s := core.NewSanitizer(deny, "README.yaml")
	in := catalogOf(map[string]core.Record{"d": {"v": "<("}}, "d")

	out, _ := s.Sanitize(in)
	rec, _ := out.Get("d")
	assert.Equal(t, "(lt)", rec["v"])
}

func TestSanitize_RenamesKeyKeepingValue(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")
	in := catalogOf(map[string]core.Record{
		"d": {"Owner(s)": "team", "Count": 3},
	}, "d")

	out, warnings := s.Sanitize(in)
	rec, _ := out.Get("d")
	assert.Equal(t, core.Record{"Owners": "team", "Count": 3}, rec)
	assert.Equal(t, []string{"d/README.yaml"}, warnings.Sorted())
}

func TestSanitize_KeyCollisionLastWriteWins(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")
	// Both keys translate to "xy". With no document order the keys are
	// visited sorted, so "x{y}" is renamed last and its value wins.
	in := catalogOf(map[string]core.Record{
		"d": {"x(y)": "first", "x{y}": "second"},
	}, "d")

	out, warnings := s.Sanitize(in)
	rec, _ := out.Get("d")
	assert.Equal(t, core.Record{"xy": "second"}, rec)
	assert.True(t, warnings.Has("d/README.yaml"))
}

func TestSanitize_KeyCollisionFollowsDocumentOrder(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")

	tests := []struct {
		name string
		rec  core.Record
		keys []string
		want core.Record
	}{
		{
			name: "Later Rename Wins",
			rec:  core.Record{"x(y)": "first", "x{y}": "second"},
			keys: []string{"x{y}", "x(y)"},
			want: core.Record{"xy": "first"},
		},
		{
			name: "Rename Overwrites Clean Key Written After It",
			rec:  core.Record{"x(y)": "renamed", "xy": "clean"},
			keys: []string{"x(y)", "xy"},
			want: core.Record{"xy": "renamed"},
		},
		{
			name: "Rename Overwrites Clean Key Written Before It",
			rec:  core.Record{"xy": "clean", "x(y)": "renamed"},
			keys: []string{"xy", "x(y)"},
			want: core.Record{"xy": "renamed"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := core.NewCatalog()
			in.Put("d", tc.rec, tc.keys...)

			out, _ := s.Sanitize(in)
			rec, _ := out.Get("d")
			assert.Equal(t, tc.want, rec)
		})
	}
}

func TestSanitize_NonStringValuesUntouched(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")
	nested := map[string]any{"inner": "<b>"}
	list := []any{"(a)", 1}
	in := catalogOf(map[string]core.Record{
		"d": {"n": 42, "b": true, "nested": nested, "list": list, "nil": nil},
	}, "d")

	out, warnings := s.Sanitize(in)
	rec, _ := out.Get("d")
	assert.Equal(t, 42, rec["n"])
	assert.Equal(t, true, rec["b"])
	assert.Equal(t, "<b>", rec["nested"].(map[string]any)["inner"], "nested values are not sanitized")
	assert.Equal(t, "(a)", rec["list"].([]any)[0])
	assert.Equal(t, 0, warnings.Len())
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	s := core.NewSanitizer(core.DefaultDenyList(), "README.yaml")
	original := core.Record{"T(itle)": "a;b"}
	in := catalogOf(map[string]core.Record{"d": original}, "d")

	_, _ = s.Sanitize(in)

	rec, _ := in.Get("d")
	assert.Equal(t, core.Record{"T(itle)": "a;b"}, rec)
}

// Replacements are not rescanned, so "&lt;" keeps its ';'. Only characters
// with an empty replacement are checked here.
func TestSanitize_KeysAreClean(t *testing.T) {
	deny := core.DefaultDenyList()
	s := core.NewSanitizer(deny, "README.yaml")
	in := catalogOf(map[string]core.Record{
		"d": {"x}": 1, "{b}": 2, "(c);": 3, "ok": 4},
	}, "d")

	out, _ := s.Sanitize(in)
	rec, _ := out.Get("d")
	require.Len(t, rec, 4)
	for k := range rec {
		assert.False(t, deny.Contains(k), "key %q still holds a denied character", k)
		assert.False(t, strings.ContainsAny(k, "{}();"))
	}
}
