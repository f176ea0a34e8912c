package fsutil

import "strings"

// SplitLines splits text into lines without terminators. A trailing newline
// does not produce an empty last line, and "\r\n" endings are accepted.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// JoinLines serializes lines. Each element is followed by one "\n", except
// elements that already contain a newline, which are written verbatim.
func JoinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		if !strings.Contains(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
