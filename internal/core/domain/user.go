package domain

import "time"

// User models a registered account. Name is the display form derived from
// FirstName and LastName at registration time.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName derives the display name from the name parts.
func FullName(first, last string) string {
	return first + " " + last
}

// Session holds a copy of the currently authenticated user. At most one
// session record is persisted; its presence at startup resumes the
// authenticated state.
type Session struct {
	User User `json:"user"`
}
