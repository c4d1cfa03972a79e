// Package template implements the flat {key} substitution language used for
// video titles and descriptions. It is deliberately minimal: a fixed flat
// key set, no nesting, no loops, no conditionals. The renderer is a pure
// function so a richer engine could replace it without touching the
// pipeline.
package template

import "strings"

// Render substitutes {key} placeholders in tmpl with values from ctx in a
// single non-recursive pass. Unknown keys substitute to the empty string;
// substituted values are never re-scanned.
//
// Fail-soft policy: a malformed template (any brace outside a well-formed
// {key} placeholder) renders to "" so broken template syntax never leaks
// into a published title or description. An empty template always yields "".
func Render(tmpl string, ctx map[string]string) string {
	if tmpl == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '}':
			// Closing brace with no open placeholder.
			return ""
		case '{':
			end := closingBrace(tmpl, i+1)
			if end < 0 {
				return ""
			}
			b.WriteString(ctx[tmpl[i+1:end]])
			i = end + 1
		default:
			b.WriteByte(tmpl[i])
			i++
		}
	}
	return b.String()
}

// closingBrace returns the index of the '}' terminating the placeholder that
// starts at from, or -1 when another '{' intervenes or the string ends.
func closingBrace(s string, from int) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '}':
			return i
		case '{':
			return -1
		}
	}
	return -1
}
