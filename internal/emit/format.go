package emit

import (
	"mvdan.cc/gofumpt/format"
)

// Format formats a generated Go buffer in-memory with gofumpt. If the
// buffer does not parse, the original is returned unchanged so the caller
// can still inspect what was emitted.
func Format(content []byte) []byte {
	formatted, err := format.Source(content, format.Options{})
	if err != nil {
		return content
	}
	return formatted
}
