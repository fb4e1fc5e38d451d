package problemgen

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the correct answer.
// Returns true if the answer is correct.
//
// Normalization rules:
// - A number 1-4 selects the choice at that position
// - Otherwise the input is matched against the answer text
// - Comparison is case-insensitive
// - Runs of whitespace collapse to one space and spaces around "/" are dropped
func CheckAnswer(learnerAnswer string, question *Question) bool {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if learnerAnswer == "" {
		return false
	}

	// Try matching by index (1-4).
	if idx, err := strconv.Atoi(learnerAnswer); err == nil && idx >= 1 && idx <= len(question.Choices) {
		return normalizeChoice(question.Choices[idx-1]) == normalizeChoice(question.Answer)
	}

	return normalizeChoice(learnerAnswer) == normalizeChoice(question.Answer)
}

// ChoiceIndex resolves the learner's input to a zero-based choice position,
// or -1 if it names none of the choices.
func ChoiceIndex(learnerAnswer string, question *Question) int {
	learnerAnswer = strings.TrimSpace(learnerAnswer)
	if idx, err := strconv.Atoi(learnerAnswer); err == nil && idx >= 1 && idx <= len(question.Choices) {
		return idx - 1
	}
	key := normalizeChoice(learnerAnswer)
	for i, c := range question.Choices {
		if normalizeChoice(c) == key {
			return i
		}
	}
	return -1
}

// normalizeChoice canonicalizes choice text for comparison.
func normalizeChoice(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = strings.ReplaceAll(s, " /", "/")
	return strings.ReplaceAll(s, "/ ", "/")
}
