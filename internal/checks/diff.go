package checks

import "strings"

// addedLines returns the text of every added line in a unified diff
// patch, with the leading "+" stripped. File headers ("+++") are not
// added lines.
func addedLines(patch string) []string {
	if patch == "" {
		return nil
	}

	var out []string
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			out = append(out, line[1:])
		}
	}
	return out
}

// isDiffHeader reports whether a raw patch line is diff metadata rather
// than file content.
func isDiffHeader(line string) bool {
	return strings.HasPrefix(line, "+++") ||
		strings.HasPrefix(line, "---") ||
		strings.HasPrefix(line, "@@") ||
		strings.HasPrefix(line, "diff ") ||
		strings.HasPrefix(line, "index ")
}
