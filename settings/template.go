package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format replaces positional placeholders ({0}, {1}, ...) in template with
// args. "{{" and "}}" produce literal braces. Placeholders with no matching
// argument, and anything else in braces, are kept as written.
func Format(template string, args ...any) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		ch := template[i]
		switch {
		case ch == '{' && i+1 < len(template) && template[i+1] == '{':
			b.WriteByte('{')
			i += 2
		case ch == '}' && i+1 < len(template) && template[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case ch == '{':
			idx, width, ok := parsePlaceholder(template[i:])
			if ok && idx < len(args) {
				b.WriteString(fmt.Sprint(args[idx]))
			} else {
				b.WriteString(template[i : i+width])
			}
			i += width
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

// Placeholders returns the distinct placeholder indices used by template, in
// ascending order.
func Placeholders(template string) []int {
	seen := make(map[int]struct{})
	for i := 0; i < len(template); {
		if i+1 < len(template) && (template[i:i+2] == "{{" || template[i:i+2] == "}}") {
			i += 2
			continue
		}
		if template[i] != '{' {
			i++
			continue
		}
		idx, width, ok := parsePlaceholder(template[i:])
		if ok {
			seen[idx] = struct{}{}
		}
		i += width
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// parsePlaceholder reads "{n}" at the start of s. width is the number of
// bytes consumed; when ok is false width is 1 so the brace is copied as is.
func parsePlaceholder(s string) (idx int, width int, ok bool) {
	end := strings.IndexByte(s, '}')
	if end < 2 {
		return 0, 1, false
	}
	n, err := strconv.Atoi(s[1:end])
	if err != nil || n < 0 || s[1] == '+' || s[1] == '-' {
		return 0, 1, false
	}
	return n, end + 1, true
}
