package recipe

import "strings"

// ParseIngredients splits newline-delimited ingredient text into ordered
// lines: each line is trimmed and blank lines are dropped. Windows line
// endings are tolerated.
func ParseIngredients(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// JoinIngredients is the inverse used to pre-populate the form's
// ingredients field in edit mode.
func JoinIngredients(ingredients []string) string {
	return strings.Join(ingredients, "\n")
}
