package srs

import (
	"testing"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("zero config keeps defaults", func(t *testing.T) {
		assert.Equal(t, NewDefaultParams(), NewParams(ParamsConfig{}))
	})

	t.Run("overrides are applied", func(t *testing.T) {
		params := NewParams(ParamsConfig{
			MinEaseFactor:                 1.5,
			MaxEaseFactor:                 3.0,
			InitialEaseFactor:             2.0,
			CorrectEaseFactorAdjustment:   0.15,
			IncorrectEaseFactorAdjustment: -0.3,
			IncorrectInterval:             2,
			GraduationInterval:            4,
		})

		assert.Equal(t, 1.5, params.MinEaseFactor)
		assert.Equal(t, 3.0, params.MaxEaseFactor)
		assert.Equal(t, 2.0, params.InitialEaseFactor)
		assert.Equal(t, 0.15, params.EaseFactorAdjustment[domain.OutcomeCorrect])
		assert.Equal(t, -0.3, params.EaseFactorAdjustment[domain.OutcomeIncorrect])
		assert.Equal(t, 2, params.IncorrectInterval)
		assert.Equal(t, 4, params.GraduationInterval)
	})

	t.Run("defaults are not shared between instances", func(t *testing.T) {
		a := NewDefaultParams()
		a.EaseFactorAdjustment[domain.OutcomeCorrect] = 1
		assert.Equal(t, 0.1, NewDefaultParams().EaseFactorAdjustment[domain.OutcomeCorrect])
	})
}
