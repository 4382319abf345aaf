package render

import "fmt"

// Lines renders m as plain text rows, one per item, numbered from 1.
// mark turns a completion flag into a checkbox glyph.
func Lines(m Model, mark func(completed bool) string) []string {
	if m.Empty {
		return []string{m.EmptyText}
	}
	if mark == nil {
		mark = func(c bool) string {
			if c {
				return "[x]"
			}
			return "[ ]"
		}
	}
	out := make([]string, 0, len(m.Rows))
	for i, r := range m.Rows {
		text := r.Text
		if r.Editing {
			text = r.Draft + "  (editing)"
		}
		out = append(out, fmt.Sprintf("%2d. %s %s", i+1, mark(r.Completed), text))
	}
	return out
}
