package srs

import (
	"math"

	"github.com/phrazzld/scry-study/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the review outcome.
//
// A correct answer raises the ease factor, an incorrect one lowers it. The
// result is clamped to [params.MinEaseFactor, params.MaxEaseFactor].
func calculateNewEaseFactor(
	currentEF float64,
	outcome domain.Outcome,
	params *Params,
) float64 {
	newEF := currentEF + params.EaseFactorAdjustment[outcome]

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines how many review steps pass before the card
// is due again.
//
// Algorithm behavior:
//   - Incorrect: resets to params.IncorrectInterval
//   - Correct: the current interval times the current (pre-update) ease
//     factor, rounded, never below params.MinInterval
func calculateNewInterval(
	currentInterval int,
	easeFactor float64,
	outcome domain.Outcome,
	params *Params,
) int {
	if outcome == domain.OutcomeIncorrect {
		return params.IncorrectInterval
	}

	next := int(math.Round(float64(currentInterval) * easeFactor))
	if next < params.MinInterval {
		next = params.MinInterval
	}
	return next
}

// calculateNextState creates a new CardState reflecting one review at the
// given session clock. The input state is not modified.
func calculateNextState(
	state CardState,
	outcome domain.Outcome,
	clock int,
	params *Params,
) CardState {
	next := state

	next.Reviews++
	next.LastOutcome = outcome
	next.IntervalCount = calculateNewInterval(state.IntervalCount, state.EaseFactor, outcome, params)
	next.EaseFactor = calculateNewEaseFactor(state.EaseFactor, outcome, params)
	next.DuePosition = clock + next.IntervalCount

	return next
}
