package bot

// Config represents the configuration for the bot
type Config struct {
	Token string
	// ChatID is the only chat the bot talks to
	ChatID int64
	// Long polling timeout in seconds
	PollTimeout int
	// JournalPageSize is how many entries /journal shows
	JournalPageSize int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() Config {
	return Config{
		PollTimeout:     60,
		JournalPageSize: 5,
	}
}
