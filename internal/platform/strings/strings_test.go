package strings

import (
	"testing"

	kit "spedicija/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	if got := IfEmpty(nil, []string{"GET"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty default = %v", got)
	}
	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty passthrough = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("gateway", "name") != "gateway" {
		t.Fatal("MustString passthrough")
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestPrefix(t *testing.T) {
	cases := map[string]string{"": "", "/": "", " meta/ ": "/meta", "/api/v1": "/api/v1"}
	for in, want := range cases {
		if got := Prefix(in); got != want {
			t.Fatalf("Prefix(%q) = %q want %q", in, got, want)
		}
	}
}

func TestMask(t *testing.T) {
	if got := Mask("sp_abcdefgh", 5); got != "sp_ab…" {
		t.Fatalf("Mask = %q", got)
	}
	if got := Mask("abc", 5); got != "***" {
		t.Fatalf("Mask short = %q", got)
	}
}
