package script

import "strings"

// Statement is one comment-free, non-blank line of a script.
type Statement struct {
	Line int    `json:"line"` // 1-based line number in the source file
	Text string `json:"text"`
}

// Preprocess splits raw script text into statements.
// Lines are trimmed; empty lines and lines starting with '#' are dropped.
// Nothing else is validated here, malformed commands are left to Parse.
func Preprocess(text string) []Statement {
	var stmts []Statement
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stmts = append(stmts, Statement{Line: i + 1, Text: line})
	}
	return stmts
}
