package slug

import (
	"regexp"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A post about Flask", "a-post-about-flask"},
		{"First Post!", "first-post"},
		{"First Post! v2", "first-post-v2"},
		{"  lots   of   spaces  ", "lots-of-spaces"},
		{"snake_case_name", "snake-case-name"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{"A post about Flask", "First Post!", "MiXeD CaSe", "", "a--b"}

	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make(Make(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestMake_Charset(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{"Hello, World!", "Tabs\tand\nnewlines", "under_score", "100% Legit"}

	for _, in := range inputs {
		got := Make(in)
		if !valid.MatchString(got) {
			t.Errorf("Make(%q) = %q, contains characters outside [a-z0-9-]", in, got)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("first-post", 2); got != "first-post-2" {
		t.Errorf("WithSuffix(first-post, 2) = %q", got)
	}
	if got := WithSuffix("first-post", 1); got != "first-post" {
		t.Errorf("WithSuffix(first-post, 1) = %q, want unchanged", got)
	}
}
