package variables

import "strings"

// Replace splices r into text in place of tok. tok must come from scanning
// text itself; offsets are clamped so a stale token cannot panic.
func Replace(text string, tok Token, r string) string {
	start := clamp(tok.Start, 0, len(text))
	end := clamp(tok.End, start, len(text))
	return text[:start] + r + text[end:]
}

// Fill substitutes every placeholder whose name has an entry in values and
// returns the names that were left in place.
func Fill(text string, values map[string]string) (string, []string) {
	var (
		b       strings.Builder
		missing []string
		last    int
	)
	seen := make(map[string]bool)
	for tok := range Scan(text) {
		name := tok.Name()
		value, ok := values[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			continue
		}
		b.WriteString(text[last:tok.Start])
		b.WriteString(value)
		last = tok.End
	}
	b.WriteString(text[last:])
	return b.String(), missing
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
