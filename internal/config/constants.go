package config

// Default paths and upstream endpoints
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./dictionary.db"

	// DefaultDictionaryBaseURL is the Free Dictionary API endpoint the word
	// detail endpoint proxies
	DefaultDictionaryBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
)
