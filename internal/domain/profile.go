package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileInfo is the customer-facing profile.
type ProfileInfo struct {
	Nickname               string    `json:"nickname"`
	Email                  string    `json:"email"`
	RegistrationDate       time.Time `json:"registrationDate"`
	RecentlyViewedProducts []string  `json:"recentlyViewedProducts"`
}

// FormattedRegistration renders RegistrationDate in the storefront display layout.
func (p ProfileInfo) FormattedRegistration() string {
	return p.RegistrationDate.Format(displayLayout)
}

// UserProfile binds one customer to their order history and profile.
// Orders reference items by id only; the item may no longer exist.
type UserProfile struct {
	ID      uuid.UUID   `json:"id"`
	Orders  []Order     `json:"orders"`
	Profile ProfileInfo `json:"profileInfo"`
}

// NewUserProfile binds profile and orders under a fresh random id.
func NewUserProfile(profile ProfileInfo, orders []Order) UserProfile {
	return UserProfile{
		ID:      uuid.New(),
		Orders:  orders,
		Profile: profile,
	}
}

// User is the identity returned by the auth backend after a successful sign-in.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
