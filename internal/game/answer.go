package game

import "strings"

// IsCorrect reports whether a submission matches any acceptable answer.
// Leading/trailing whitespace is ignored and comparison is case-insensitive,
// but the match is otherwise exact: "figo" does not count for "Luis Figo".
func IsCorrect(submission string, acceptable []string) bool {
	submission = strings.TrimSpace(submission)
	if submission == "" {
		return false
	}
	for _, answer := range acceptable {
		if strings.EqualFold(submission, answer) {
			return true
		}
	}
	return false
}
