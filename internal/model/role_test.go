package model

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"gym", "trainer", "gym_seeker"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q): %v", s, err)
		}
		if r.String() != s {
			t.Errorf("ParseRole(%q) = %q", s, r)
		}
	}
	for _, s := range []string{"", "GYM", "owner", "gym:123", "admin"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q): expected error", s)
		}
	}
}
