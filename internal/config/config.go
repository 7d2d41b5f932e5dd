package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log   LogConfig   `mapstructure:"log" validate:"required"`
	Study StudyConfig `mapstructure:"study" validate:"required"`
	SRS   SRSConfig   `mapstructure:"srs"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// StudyConfig contains settings for deck loading and session scheduling.
type StudyConfig struct {
	// DecksPath is a CSV file or a directory of CSV files.
	DecksPath string `mapstructure:"decks_path"`
	// Deck, when set, starts a session on this deck immediately.
	Deck   string `mapstructure:"deck"`
	Policy string `mapstructure:"policy" validate:"required,oneof=sequential spaced random"`
	Seed   uint64 `mapstructure:"seed"`
}

// SRSConfig overrides spaced repetition parameters. Zero values keep the
// algorithm defaults.
type SRSConfig struct {
	MinEaseFactor       float64 `mapstructure:"min_ease_factor" validate:"gte=0"`
	MaxEaseFactor       float64 `mapstructure:"max_ease_factor" validate:"gte=0"`
	InitialEaseFactor   float64 `mapstructure:"initial_ease_factor" validate:"gte=0"`
	CorrectAdjustment   float64 `mapstructure:"correct_adjustment" validate:"gte=0"`
	IncorrectAdjustment float64 `mapstructure:"incorrect_adjustment" validate:"lte=0"`
	IncorrectInterval   int     `mapstructure:"incorrect_interval" validate:"gte=0"`
	GraduationInterval  int     `mapstructure:"graduation_interval" validate:"gte=0"`
}
