package textutil

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  plain  ", "plain"},
		{"line\none", "line one"},
		{"tab\tseparated\twords", "tab separated words"},
		{"many   spaces\n\n here", "many spaces here"},
		{"ctrl\x00char", "ctrlchar"},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Synthesis of Novel Catalysts", "Synthesis of Novel Catalysts"},
		{"SYNTHESIS OF NOVEL CATALYSTS", "Synthesis Of Novel Catalysts"},
		{"synthesis of novel catalysts", "Synthesis Of Novel Catalysts"},
		{"  mixed Case\ttitle  ", "mixed Case title"},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.in); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
