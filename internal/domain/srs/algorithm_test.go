package srs

import (
	"testing"

	"github.com/phrazzld/scry-study/internal/domain"
)

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  int
		ef       float64
		outcome  domain.Outcome
		expected int
	}{
		{
			name:     "Incorrect outcome should reset interval",
			current:  10,
			ef:       2.5,
			outcome:  domain.OutcomeIncorrect,
			expected: 1,
		},
		{
			name:     "Correct outcome on a new card uses the minimum",
			current:  0,
			ef:       2.5,
			outcome:  domain.OutcomeCorrect,
			expected: 1, // max(1, round(0 * 2.5))
		},
		{
			name:     "Correct outcome multiplies by ease factor",
			current:  4,
			ef:       2.5,
			outcome:  domain.OutcomeCorrect,
			expected: 10,
		},
		{
			name:     "Correct outcome rounds half away from zero",
			current:  1,
			ef:       2.5,
			outcome:  domain.OutcomeCorrect,
			expected: 3, // round(2.5) = 3
		},
		{
			name:     "Correct outcome rounds down below half",
			current:  3,
			ef:       1.4,
			outcome:  domain.OutcomeCorrect,
			expected: 4, // round(4.2) = 4
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newInterval := calculateNewInterval(tc.current, tc.ef, tc.outcome, params)

			if newInterval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, newInterval)
			}
		})
	}
}

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		outcome  domain.Outcome
		expected float64
	}{
		{
			name:     "Correct outcome should increase ease factor",
			current:  2.0,
			outcome:  domain.OutcomeCorrect,
			expected: 2.1,
		},
		{
			name:     "Incorrect outcome should decrease ease factor",
			current:  2.5,
			outcome:  domain.OutcomeIncorrect,
			expected: 2.3,
		},
		{
			name:     "Minimum ease factor should be enforced",
			current:  1.35,
			outcome:  domain.OutcomeIncorrect,
			expected: 1.3, // 1.35 - 0.2 = 1.15, but min is 1.3
		},
		{
			name:     "Maximum ease factor should be enforced",
			current:  2.45,
			outcome:  domain.OutcomeCorrect,
			expected: 2.5, // 2.45 + 0.1 = 2.55, but max is 2.5
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.outcome, params)

			// Use a small epsilon for float comparison
			epsilon := 0.001
			if newEF < tc.expected-epsilon || newEF > tc.expected+epsilon {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, newEF)
			}
		})
	}
}

func TestCalculateNextState(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	initial := CardState{EaseFactor: 2.0, IntervalCount: 2, DuePosition: 3, Reviews: 1}
	updated := calculateNextState(initial, domain.OutcomeCorrect, 5, params)

	if initial.Reviews != 1 || initial.IntervalCount != 2 {
		t.Fatal("calculateNextState modified its input")
	}
	if updated.Reviews != 2 {
		t.Errorf("Expected Reviews to increment to 2, got %d", updated.Reviews)
	}
	if updated.IntervalCount != 4 {
		t.Errorf("Expected interval 4 (2 * 2.0), got %d", updated.IntervalCount)
	}
	if updated.DuePosition != 9 {
		t.Errorf("Expected due position 5 + 4 = 9, got %d", updated.DuePosition)
	}
	if updated.LastOutcome != domain.OutcomeCorrect {
		t.Errorf("Expected last outcome correct, got %s", updated.LastOutcome)
	}
}
