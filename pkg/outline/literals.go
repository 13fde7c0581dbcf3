package outline

import (
	"regexp"
	"strings"
)

// literalPattern matches complete string and character literals, honouring
// backslash escapes. Scanning left to right with one alternation keeps a
// quote inside the other kind of literal from opening a new one.
var literalPattern = regexp.MustCompile(`"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`)

// StripLiterals removes string and character literals from line so that
// braces, semicolons and keywords inside them are not counted. This is a
// textual approximation, not a lexer.
func StripLiterals(line string) string {
	return literalPattern.ReplaceAllString(line, "")
}

// CountBraces returns the number of opening and closing braces across
// lines, ignoring those inside literals.
func CountBraces(lines []string) (opening, closing int) {
	for _, line := range lines {
		stripped := StripLiterals(line)
		opening += strings.Count(stripped, "{")
		closing += strings.Count(stripped, "}")
	}
	return opening, closing
}
