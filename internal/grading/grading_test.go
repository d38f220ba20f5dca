package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fourQuestionPolicy() Policy {
	return Policy{
		Answers:    []string{"a", "b", "c", "d"},
		TotalMarks: 100,
		PassMark:   50,
	}
}

func TestScoreClassifiesRightWrongSkip(t *testing.T) {
	card, err := Score(fourQuestionPolicy(), []string{"a", "b", "x", ""})
	require.NoError(t, err)

	require.Equal(t, 2, card.TotalRight)
	require.Equal(t, 1, card.TotalWrong)
	require.Equal(t, 1, card.TotalSkip)
	require.Equal(t, 3, card.TotalAnswered)
	require.Equal(t, 25.0, card.PerQuestionMark)
	require.Equal(t, 50.0, card.ObtainMarks)
	require.True(t, card.Passed)
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	policy := Policy{Answers: []string{"A", "Paris"}, TotalMarks: 10, PassMark: 10}

	card, err := Score(policy, []string{"a", "pArIs"})
	require.NoError(t, err)
	require.Equal(t, 2, card.TotalRight)
	require.Equal(t, 0, card.TotalWrong)
	require.True(t, card.Passed)
}

func TestScoreNegativeMarkingDeductsFlatRate(t *testing.T) {
	policy := fourQuestionPolicy()
	policy.NegativeMarking = true
	policy.NegativeMark = 25

	card, err := Score(policy, []string{"a", "b", "x", ""})
	require.NoError(t, err)

	require.Equal(t, 0.25, card.TotalNegativeMark)
	require.Equal(t, 49.75, card.ObtainMarks)
	require.False(t, card.Passed, "49.75 is below the pass mark of 50")
}

func TestScoreIgnoresNegativeMarkWhenDisabled(t *testing.T) {
	policy := fourQuestionPolicy()
	policy.NegativeMarking = false
	policy.NegativeMark = 80

	card, err := Score(policy, []string{"x", "x", "x", "x"})
	require.NoError(t, err)
	require.Equal(t, 0.0, card.TotalNegativeMark)
	require.Equal(t, 0.0, card.ObtainMarks)
	require.False(t, card.Passed)
}

func TestScoreCountsAlwaysSumToQuestionCount(t *testing.T) {
	cases := [][]string{
		{"a", "b", "c", "d"},
		{"d", "c", "b", "a"},
		{"", "", "", ""},
		{"a", "", "x"},
		{},
		{"a"},
	}

	for _, answers := range cases {
		card, err := Score(fourQuestionPolicy(), answers)
		require.NoError(t, err)
		require.Equal(t, 4, card.TotalRight+card.TotalWrong+card.TotalSkip)
		require.Equal(t, card.TotalAnswered, card.TotalRight+card.TotalWrong)
	}
}

func TestScoreTreatsMissingTailAsSkipped(t *testing.T) {
	card, err := Score(fourQuestionPolicy(), []string{"a"})
	require.NoError(t, err)
	require.Equal(t, 1, card.TotalRight)
	require.Equal(t, 3, card.TotalSkip)
}

func TestScoreRejectsExtraAnswers(t *testing.T) {
	_, err := Score(fourQuestionPolicy(), []string{"a", "b", "c", "d", "e"})
	require.ErrorIs(t, err, ErrAnswerCountMismatch)
}

func TestScoreRejectsInvalidPolicy(t *testing.T) {
	_, err := Score(Policy{TotalMarks: 100}, nil)
	require.ErrorIs(t, err, ErrInvalidScoringPolicy)

	_, err = Score(Policy{Answers: []string{"a"}, TotalMarks: 0}, []string{"a"})
	require.ErrorIs(t, err, ErrInvalidScoringPolicy)
}

func TestScoreCanGoNegative(t *testing.T) {
	policy := Policy{
		Answers:         []string{"a", "b"},
		TotalMarks:      10,
		PassMark:        5,
		NegativeMarking: true,
		NegativeMark:    100,
	}

	card, err := Score(policy, []string{"x", "y"})
	require.NoError(t, err)
	require.Equal(t, 2.0, card.TotalNegativeMark)
	require.Equal(t, -2.0, card.ObtainMarks)
	require.False(t, card.Passed)
}
