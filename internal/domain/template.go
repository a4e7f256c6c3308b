package domain

import (
	"strings"
	"time"
	"unicode"
)

// tokenPrefix opens a %date:<layout>% token, e.g. %date:yyyyMMdd% or %date:hhmmss%.
const tokenPrefix = "%date:"

// dateFields maps layout fields to Go reference-time layouts. Longer fields
// come first so "yyyy" wins over "yy". Hours are always 24h.
var dateFields = []struct {
	field  string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"hh", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// ExpandTemplate replaces every %date:<layout>% token in tmpl with now
// formatted by layout. All tokens see the same instant. Tokens whose layout
// contains an unknown field are left as-is, and their closing '%' may still
// open the next token.
func ExpandTemplate(tmpl string, now time.Time) string {
	var b strings.Builder
	rest := tmpl
	for {
		start := strings.Index(rest, tokenPrefix)
		if start < 0 {
			break
		}
		body := rest[start+len(tokenPrefix):]
		end := strings.IndexByte(body, '%')
		if end < 0 {
			break
		}

		b.WriteString(rest[:start])
		if value, ok := formatDate(body[:end], now); ok && end > 0 {
			b.WriteString(value)
			rest = body[end+1:]
			continue
		}
		b.WriteString(tokenPrefix)
		b.WriteString(body[:end])
		rest = body[end:]
	}
	b.WriteString(rest)
	return b.String()
}

func formatDate(layout string, now time.Time) (string, bool) {
	var b strings.Builder
	rest := layout
	for rest != "" {
		matched := false
		for _, f := range dateFields {
			if strings.HasPrefix(rest, f.field) {
				b.WriteString(now.Format(f.layout))
				rest = rest[len(f.field):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		r := rune(rest[0])
		if unicode.IsLetter(r) || r >= unicode.MaxASCII {
			return "", false
		}
		b.WriteByte(rest[0])
		rest = rest[1:]
	}
	return b.String(), true
}
