package rendering

import "strings"

// EscapeXML escapes the five XML special characters and drops control
// characters that are illegal in XML 1.0. Every string value must pass
// through here before it is spliced into WordprocessingML, otherwise a
// CV containing '&' or '<' produces a document Word refuses to open.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&apos;")
		default:
			if isXMLLegal(r) {
				result.WriteRune(r)
			}
		}
	}

	return result.String()
}

// isXMLLegal reports whether r is allowed in XML 1.0 character data.
// Tab, LF and CR are the only legal characters below 0x20.
func isXMLLegal(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	default:
		return true
	}
}
