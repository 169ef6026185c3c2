package domain

import "time"

// Customer is a federated account known to the identity backend.
// A customer is identified by the provider-issued subject, not by a password.
type Customer struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	Subject     string    `json:"-"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	LastSignIn  time.Time `json:"lastSignIn"`
}

// User projects a customer onto the identity returned to sign-in callers.
func (c Customer) User() User {
	return User{ID: c.ID, Email: c.Email, DisplayName: c.DisplayName}
}
