package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Engine implements port.NameMatcher with plain substring matching on
// NFC-normalized strings. File systems that store names decomposed (NFD)
// would otherwise never match a filter typed in composed form.
type Engine struct{}

func (e *Engine) Contains(name, substr string) bool {
	return strings.Contains(norm.NFC.String(name), norm.NFC.String(substr))
}
