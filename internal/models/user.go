package models

// User is read-only reference data owned by the external users system.
// The ledger never creates or mutates users; it only checks existence
// and reads the profile.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
