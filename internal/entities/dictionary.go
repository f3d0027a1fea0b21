package entities

import (
	"time"
)

// User is an API account. Passwords are stored as bcrypt hashes and API
// tokens live in the api_tokens table, so neither ever appears in JSON.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// APIToken is a bearer token issued at signin. Only the SHA-256 hash of the
// plaintext token is stored; logout deletes the row that was presented.
type APIToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;size:64" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Word is a known dictionary word. The text is normalized to lowercase and
// unique; rows are created on first successful upstream lookup or bulk import
// and never deleted afterwards.
type Word struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Word      string    `gorm:"uniqueIndex;size:128" json:"word"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Favorite links a user to a word they favorited. The composite unique index
// is the authoritative duplicate-favorite signal: concurrent inserts race at
// the database, the loser gets a duplicated-key error.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorites_user_word" json:"user_id"`
	WordID    uint      `gorm:"uniqueIndex:idx_favorites_user_word" json:"word_id"`
	Word      Word      `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// History records that a user viewed a word. At most one row exists per
// (user, word); repeat views bump UpdatedAt in place, which is also the
// recency ordering for the history listing.
type History struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_histories_user_word" json:"user_id"`
	WordID    uint      `gorm:"uniqueIndex:idx_histories_user_word" json:"word_id"`
	Word      Word      `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}
