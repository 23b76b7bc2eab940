package helpers

import "testing"

func TestContainsPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"nameValue", "%nameValue%"},
		{"", "%%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
		{`%_\`, `%\%\_\\%`},
	}

	for _, tc := range cases {
		if got := ContainsPattern(tc.in); got != tc.want {
			t.Errorf("ContainsPattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
