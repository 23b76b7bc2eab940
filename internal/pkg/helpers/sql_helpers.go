package helpers

import "strings"

// likeEscaper escapes the LIKE metacharacters and the escape character
// itself so user input matches literally.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLikePattern escapes `\`, `%` and `_` in s for use inside a LIKE
// pattern evaluated with ESCAPE '\'.
func EscapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds a substring-match LIKE pattern for s, escaping any
// metacharacters the caller supplied.
func ContainsPattern(s string) string {
	return "%" + EscapeLikePattern(s) + "%"
}
