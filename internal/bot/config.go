package bot

// Config represents the configuration for the bot
type Config struct {
	// Default category to study when /study is given no argument
	DefaultCategory string
	// How many example sentences to request from the AI per /suggest
	SuggestionCount int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultCategory: "GENERAL",
		SuggestionCount: 3,
	}
}
