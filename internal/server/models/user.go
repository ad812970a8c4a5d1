// Package models defines the persisted record types.
package models

// User is a registered account. Email holds the masked (base64) form of the
// raw address and is unique across all users. User records are never mutated
// or deleted by the API.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}
