// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── words/           # The deduplicated word index
//	├── favorites/       # Per-user favorited words
//	└── history/         # Per-user word visit history
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./dictionary.db")
//
//	// Create domain-specific repositories
//	wordsRepo := words.NewRepository(db.DB)
//	favoritesRepo := favorites.NewRepository(db.DB)
//	historyRepo := history.NewRepository(db.DB)
//
// Services depend on narrow interfaces satisfied by these repositories, so
// tests can substitute fakes without touching the database.
//
// # Adding a New Domain
//
// To add a new domain:
//
//  1. Create a new sub-package under internal/database/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Declare the narrow interface next to the consumer and satisfy it
package database
