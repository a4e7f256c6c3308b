package domain

import "strings"

// ReplaceSubstring replaces every literal occurrence of search in name with
// replace. An empty search leaves name untouched; an empty replace deletes
// the matches. The second result reports whether a replacement was requested.
func ReplaceSubstring(name, search, replace string) (string, bool) {
	if search == "" {
		return name, false
	}
	return strings.ReplaceAll(name, search, replace), true
}
