package slug_test

import (
	"testing"

	"github.com/shashiranjanraj/repwear/pkg/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Flex Performance Tee": "flex-performance-tee",
		"  HIIT & Strength!  ": "hiit-strength",
		"Séance de Yoga":       "séance-de-yoga",
		"already-slugged":      "already-slugged",
		"---":                  "",
		"Tee 2.0 (Red)":        "tee-2-0-red",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "input %q", in)
	}
}

func TestMakeUnique(t *testing.T) {
	taken := map[string]bool{"flex-tee": true, "flex-tee-2": true}
	exists := func(s string) bool { return taken[s] }

	assert.Equal(t, "flex-tee-3", slug.MakeUnique("Flex Tee", exists))
	assert.Equal(t, "fresh", slug.MakeUnique("Fresh", exists))
	assert.Equal(t, "untitled", slug.MakeUnique("!!!", exists))
}
