package srs

import (
	"github.com/phrazzld/scry-study/internal/domain"
)

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor     float64
	MaxEaseFactor     float64
	InitialEaseFactor float64

	// Adjustments for different review outcomes
	EaseFactorAdjustment map[domain.Outcome]float64

	// Interval handling, measured in review steps within a session
	MinInterval        int
	IncorrectInterval  int
	GraduationInterval int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor     float64
	MaxEaseFactor     float64
	InitialEaseFactor float64

	CorrectEaseFactorAdjustment   float64
	IncorrectEaseFactorAdjustment float64

	IncorrectInterval  int
	GraduationInterval int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,
		InitialEaseFactor: 2.5,

		EaseFactorAdjustment: map[domain.Outcome]float64{
			domain.OutcomeCorrect:   0.1,
			domain.OutcomeIncorrect: -0.2,
		},

		MinInterval:        1,
		IncorrectInterval:  1, // Reset to minimum
		GraduationInterval: 1, // Any correct answer retires the card
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.InitialEaseFactor > 0 {
		params.InitialEaseFactor = config.InitialEaseFactor
	}

	if config.CorrectEaseFactorAdjustment != 0 {
		params.EaseFactorAdjustment[domain.OutcomeCorrect] = config.CorrectEaseFactorAdjustment
	}
	if config.IncorrectEaseFactorAdjustment != 0 {
		params.EaseFactorAdjustment[domain.OutcomeIncorrect] = config.IncorrectEaseFactorAdjustment
	}

	if config.IncorrectInterval > 0 {
		params.IncorrectInterval = config.IncorrectInterval
	}
	if config.GraduationInterval > 0 {
		params.GraduationInterval = config.GraduationInterval
	}

	return params
}
