// Package grading implements the deterministic scoring engine applied to
// finalized exam submissions. It is pure computation: callers load the exam's
// scoring policy and the student's answers, and persist the scorecard.
package grading

import (
	"errors"
	"strings"
)

// Scoring errors.
var (
	// ErrInvalidScoringPolicy is returned for an empty question set or a
	// non-positive total mark, either of which would make the per-question
	// mark undefined.
	ErrInvalidScoringPolicy = errors.New("invalid scoring policy")
	// ErrAnswerCountMismatch is returned when a submission carries more
	// answers than the exam has questions.
	ErrAnswerCountMismatch = errors.New("answer count exceeds question count")
)

// Policy is the subset of an exam governing how submissions against it are
// scored.
type Policy struct {
	// Answers holds the expected answer token per question, in question
	// order. Comparison against student answers is case-insensitive.
	Answers []string
	// TotalMarks is distributed uniformly across all questions.
	TotalMarks float64
	// NegativeMarking enables the per-wrong-answer deduction.
	NegativeMarking bool
	// NegativeMark is the deduction rate in percentage points. The deduction
	// per wrong answer is NegativeMark/100, a flat amount independent of the
	// per-question mark.
	NegativeMark float64
	// PassMark is the threshold the final score is compared against.
	PassMark float64
}

// Scorecard is the outcome of scoring one answer set against a policy.
type Scorecard struct {
	TotalRight        int
	TotalWrong        int
	TotalSkip         int
	TotalAnswered     int
	PerQuestionMark   float64
	TotalNegativeMark float64
	ObtainMarks       float64
	Passed            bool
}

// Score grades the given answers against the policy in a single pass.
//
// Classification per question: an empty or whitespace-only answer counts as a
// skip, a case-insensitive match with the expected token counts as right,
// anything else counts as wrong. Submissions may carry fewer answers than
// there are questions; the missing tail is treated as skipped. More answers
// than questions is rejected.
func Score(policy Policy, answers []string) (Scorecard, error) {
	questionCount := len(policy.Answers)
	if questionCount == 0 || policy.TotalMarks <= 0 {
		return Scorecard{}, ErrInvalidScoringPolicy
	}
	if len(answers) > questionCount {
		return Scorecard{}, ErrAnswerCountMismatch
	}

	var card Scorecard
	for i, expected := range policy.Answers {
		var given string
		if i < len(answers) {
			given = strings.TrimSpace(answers[i])
		}

		switch {
		case given == "":
			card.TotalSkip++
		case strings.EqualFold(given, strings.TrimSpace(expected)):
			card.TotalRight++
		default:
			card.TotalWrong++
		}
	}

	card.TotalAnswered = card.TotalRight + card.TotalWrong
	card.PerQuestionMark = policy.TotalMarks / float64(questionCount)

	if policy.NegativeMarking {
		card.TotalNegativeMark = (policy.NegativeMark / 100) * float64(card.TotalWrong)
	}

	card.ObtainMarks = card.PerQuestionMark*float64(card.TotalRight) - card.TotalNegativeMark
	card.Passed = card.ObtainMarks >= policy.PassMark

	return card, nil
}
