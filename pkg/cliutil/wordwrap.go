package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no
// wrapping.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent is Wrap with a leading indent `i` applied to every line but the
// first (the caller is assumed to have positioned the first line already).
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, s string) string {
	if width == 0 {
		return s
	}
	avail := width - indent
	if avail < 10 {
		avail = 10
	}

	var ret strings.Builder
	for pi, paragraph := range strings.Split(s, "\n\n") {
		if pi > 0 {
			ret.WriteString("\n\n")
			ret.WriteString(strings.Repeat(" ", indent))
		}
		lineLen := 0
		for _, word := range strings.Fields(paragraph) {
			switch {
			case lineLen == 0:
				// never break before the first word
			case lineLen+1+len(word) > avail:
				ret.WriteString("\n")
				ret.WriteString(strings.Repeat(" ", indent))
				lineLen = 0
			default:
				ret.WriteString(" ")
				lineLen++
			}
			ret.WriteString(word)
			lineLen += len(word)
		}
	}
	return ret.String()
}
