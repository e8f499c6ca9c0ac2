package api

import "strings"

// CookieValue extracts a named value from a Cookie-header-format string
// ("a=1; b=2"). Returns "" when the name is absent. The session cookie is
// pasted from a browser, so surrounding whitespace is tolerated.
func CookieValue(cookies, name string) string {
	for _, part := range strings.Split(cookies, ";") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) == 2 && pair[0] == name {
			return pair[1]
		}
	}
	return ""
}
